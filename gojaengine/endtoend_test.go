package gojaengine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/jonwraymond/codemode"
	"github.com/jonwraymond/codemode/bridge"
	"github.com/jonwraymond/codemode/catalog"
)

// newEventStack wires a full executor over an in-process event backend:
// catalog, local bridge, goja engine.
func newEventStack(t *testing.T) codemode.Executor {
	t.Helper()

	cat, err := catalog.New([]catalog.Capability{
		{
			Name:        "create_event",
			Description: "Create a new event",
			Input: []catalog.Field{
				{Name: "title", Type: catalog.String()},
				{Name: "date", Type: catalog.String(), Optional: true},
			},
		},
		{
			Name:        "get_event",
			Description: "Fetch an event by id",
			Input: []catalog.Field{
				{Name: "event_id", Type: catalog.String()},
			},
		},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	backend := bridge.NewLocal()
	backend.Register("create_event", func(ctx context.Context, args map[string]any) (any, error) {
		return map[string]any{
			"id":    "evt-1",
			"title": args["title"],
		}, nil
	})
	backend.Register("get_event", func(ctx context.Context, args map[string]any) (any, error) {
		if args["event_id"] != "evt-1" {
			return nil, errors.New("Event not found")
		}
		return map[string]any{"id": "evt-1", "title": "Party"}, nil
	})

	exec, err := codemode.NewDefaultExecutor(codemode.Config{
		Catalog: cat,
		Bridge:  backend,
		Engine:  New(),
	})
	if err != nil {
		t.Fatalf("executor: %v", err)
	}
	return exec
}

func TestEndToEnd_CreateEvent(t *testing.T) {
	exec := newEventStack(t)

	res := exec.Execute(context.Background(), codemode.Request{
		Source: `async () => {
			console.log("creating event");
			const event = await proxy.create_event({ title: "Launch party" });
			return { created: event.id };
		}`,
		SessionID: "sess-1",
	})
	if !res.Success {
		t.Fatalf("expected success: %+v", res)
	}
	result, ok := res.Result.(map[string]any)
	if !ok || result["created"] != "evt-1" {
		t.Errorf("Result = %#v", res.Result)
	}
	if len(res.Calls) != 1 || res.Calls[0].Capability != "create_event" {
		t.Errorf("Calls = %+v", res.Calls)
	}
	if !strings.Contains(res.Stdout, "creating event") {
		t.Errorf("Stdout = %q", res.Stdout)
	}
}

func TestEndToEnd_UncaughtBackendRejection(t *testing.T) {
	exec := newEventStack(t)

	res := exec.Execute(context.Background(), codemode.Request{
		Source:    `async () => await proxy.get_event({ event_id: "evt-999" })`,
		SessionID: "sess-1",
	})
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Kind != codemode.FailureApplication {
		t.Errorf("Kind = %q, want application", res.Kind)
	}
	if res.Error != "Event not found" {
		t.Errorf("Error = %q, want backend message verbatim", res.Error)
	}
	// The failed call is still on the trace.
	if len(res.Calls) != 1 || res.Calls[0].Error != "Event not found" {
		t.Errorf("Calls = %+v", res.Calls)
	}
}

func TestEndToEnd_RecoveredRejection(t *testing.T) {
	exec := newEventStack(t)

	res := exec.Execute(context.Background(), codemode.Request{
		Source: `async () => {
			try {
				return await proxy.get_event({ event_id: "evt-999" });
			} catch (err) {
				if (err.name === "ApplicationError") {
					return { recovered: err.message };
				}
				throw err;
			}
		}`,
		SessionID: "sess-1",
	})
	if !res.Success {
		t.Fatalf("expected success: %+v", res)
	}
	if res.Result.(map[string]any)["recovered"] != "Event not found" {
		t.Errorf("Result = %#v", res.Result)
	}
}

func TestEndToEnd_EmptySource(t *testing.T) {
	exec := newEventStack(t)

	res := exec.Execute(context.Background(), codemode.Request{
		Source:    "",
		SessionID: "sess-1",
	})
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Kind != codemode.FailureExecution {
		t.Errorf("Kind = %q, want execution", res.Kind)
	}
}

func TestEndToEnd_ProgramError(t *testing.T) {
	exec := newEventStack(t)

	res := exec.Execute(context.Background(), codemode.Request{
		Source:    `async () => { throw new Error("boom") }`,
		SessionID: "sess-1",
	})
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Kind != codemode.FailureExecution {
		t.Errorf("Kind = %q", res.Kind)
	}
	if res.Error != "boom" {
		t.Errorf("Error = %q, want program message without wrapping", res.Error)
	}
}

func TestEndToEnd_CallLimit(t *testing.T) {
	cat, err := catalog.New([]catalog.Capability{
		{Name: "get_event", Description: "Fetch an event"},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	backend := bridge.NewLocal()
	backend.Register("get_event", func(ctx context.Context, args map[string]any) (any, error) {
		return map[string]any{"id": "evt-1"}, nil
	})
	exec, err := codemode.NewDefaultExecutor(codemode.Config{
		Catalog:            cat,
		Bridge:             backend,
		Engine:             New(),
		MaxCapabilityCalls: 3,
	})
	if err != nil {
		t.Fatalf("executor: %v", err)
	}

	res := exec.Execute(context.Background(), codemode.Request{
		Source: `async () => {
			for (let i = 0; i < 10; i++) {
				await proxy.get_event();
			}
			return "done";
		}`,
		SessionID: "sess-1",
	})
	if res.Success {
		t.Fatal("expected limit failure")
	}
	if res.Kind != codemode.FailureLimit {
		t.Errorf("Kind = %q, want limit", res.Kind)
	}
}

func TestEndToEnd_ConcurrentRuns(t *testing.T) {
	exec := newEventStack(t)

	var wg sync.WaitGroup
	results := make([]codemode.Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = exec.Execute(context.Background(), codemode.Request{
				Source: `async () => {
					const event = await proxy.create_event({ title: "Party" });
					return event.id;
				}`,
				SessionID: fmt.Sprintf("sess-%d", i),
			})
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i, res := range results {
		if !res.Success {
			t.Fatalf("run %d failed: %+v", i, res)
		}
		if res.Result != "evt-1" {
			t.Errorf("run %d Result = %v", i, res.Result)
		}
		if seen[res.ExecutionID] {
			t.Errorf("execution id %q reused across runs", res.ExecutionID)
		}
		seen[res.ExecutionID] = true
		// Each run has its own trace; nothing bleeds across contexts.
		if len(res.Calls) != 1 {
			t.Errorf("run %d Calls = %+v", i, res.Calls)
		}
	}
}

func TestEndToEnd_SessionReachesBackend(t *testing.T) {
	cat, err := catalog.New([]catalog.Capability{
		{Name: "whoami", Description: "Return the session"},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	backend := bridge.NewLocal()
	backend.Register("whoami", func(ctx context.Context, args map[string]any) (any, error) {
		return bridge.Session(ctx), nil
	})
	exec, err := codemode.NewDefaultExecutor(codemode.Config{
		Catalog: cat,
		Bridge:  backend,
		Engine:  New(),
	})
	if err != nil {
		t.Fatalf("executor: %v", err)
	}

	res := exec.Execute(context.Background(), codemode.Request{
		Source:    `async () => await proxy.whoami()`,
		SessionID: "sess-77",
	})
	if !res.Success {
		t.Fatalf("expected success: %+v", res)
	}
	if res.Result != "sess-77" {
		t.Errorf("Result = %v", res.Result)
	}
}
