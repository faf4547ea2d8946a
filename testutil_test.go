package codemode

import (
	"context"
	"sync"
	"testing"

	"github.com/jonwraymond/codemode/bridge"
	"github.com/jonwraymond/codemode/catalog"
)

// mockEngine implements Engine for testing.
type mockEngine struct {
	mu sync.Mutex

	// Configurable behavior
	executeValue any
	executeErr   error
	executeFn    func(ctx context.Context, params EngineParams, env Env) (any, error)
	panicWith    any

	// Call tracking
	executeCalls []engineCall
}

type engineCall struct {
	params EngineParams
	env    Env
}

func (m *mockEngine) Execute(ctx context.Context, params EngineParams, env Env) (any, error) {
	m.mu.Lock()
	m.executeCalls = append(m.executeCalls, engineCall{params, env})
	m.mu.Unlock()

	if m.panicWith != nil {
		panic(m.panicWith)
	}
	if m.executeFn != nil {
		return m.executeFn(ctx, params, env)
	}
	return m.executeValue, m.executeErr
}

func (m *mockEngine) calls() []engineCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]engineCall(nil), m.executeCalls...)
}

// mockInvoker implements bridge.Invoker for testing.
type mockInvoker struct {
	mu sync.Mutex

	// Configurable returns
	outcome bridge.Outcome
	err     error
	fn      func(ctx context.Context, name string, args map[string]any, sessionID string) (bridge.Outcome, error)

	// Call tracking
	invocations []invocation
}

type invocation struct {
	name      string
	args      map[string]any
	sessionID string
}

func (m *mockInvoker) Invoke(ctx context.Context, name string, args map[string]any, sessionID string) (bridge.Outcome, error) {
	m.mu.Lock()
	m.invocations = append(m.invocations, invocation{name, args, sessionID})
	m.mu.Unlock()

	if m.fn != nil {
		return m.fn(ctx, name, args, sessionID)
	}
	return m.outcome, m.err
}

func (m *mockInvoker) calls() []invocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]invocation(nil), m.invocations...)
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Capability{
		{
			Name:        "create_event",
			Description: "Create a new event",
			Input: []catalog.Field{
				{Name: "title", Type: catalog.String()},
				{Name: "location", Type: catalog.String()},
				{Name: "date", Type: catalog.String()},
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
	return c
}

func validConfig(t *testing.T, engine Engine, invoker bridge.Invoker) Config {
	t.Helper()
	if engine == nil {
		engine = &mockEngine{}
	}
	if invoker == nil {
		invoker = &mockInvoker{}
	}
	return Config{
		Catalog: testCatalog(t),
		Bridge:  invoker,
		Engine:  engine,
	}
}
