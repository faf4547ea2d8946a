package bridge

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestLocal_InvokeSuccess(t *testing.T) {
	l := NewLocal()
	l.Register("create_event", func(_ context.Context, args map[string]any) (any, error) {
		return map[string]any{"id": "evt-1", "title": args["title"]}, nil
	})

	out, err := l.Invoke(context.Background(), "create_event", map[string]any{"title": "Party"}, "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind != OutcomeStructured {
		t.Errorf("Kind = %q, want structured", out.Kind)
	}
	m := out.Unwrap().(map[string]any)
	if m["id"] != "evt-1" || m["title"] != "Party" {
		t.Errorf("Unwrap() = %v", m)
	}
}

func TestLocal_UnknownCapability(t *testing.T) {
	l := NewLocal()

	_, err := l.Invoke(context.Background(), "delete_event", nil, "sess-1")
	if err == nil {
		t.Fatal("expected error")
	}
	var appErr *ApplicationError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *ApplicationError, got %T", err)
	}
	if appErr.Message != "unknown capability: delete_event" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestLocal_HandlerErrorBecomesApplicationError(t *testing.T) {
	l := NewLocal()
	l.Register("get_event", func(_ context.Context, _ map[string]any) (any, error) {
		return nil, errors.New("Event not found")
	})

	_, err := l.Invoke(context.Background(), "get_event", map[string]any{"event_id": "missing"}, "sess-1")
	var appErr *ApplicationError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *ApplicationError, got %T", err)
	}
	if appErr.Message != "Event not found" {
		t.Errorf("Message = %q, want handler message verbatim", appErr.Message)
	}
}

func TestLocal_SessionScoping(t *testing.T) {
	l := NewLocal()
	l.Register("whoami", func(ctx context.Context, _ map[string]any) (any, error) {
		return map[string]any{"session": Session(ctx)}, nil
	})

	for _, sess := range []string{"sess-a", "sess-b"} {
		out, err := l.Invoke(context.Background(), "whoami", nil, sess)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := out.Unwrap().(map[string]any)["session"]; got != sess {
			t.Errorf("handler saw session %v, want %s", got, sess)
		}
	}
}

func TestLocal_NilArgsBecomeEmptyObject(t *testing.T) {
	l := NewLocal()
	l.Register("probe", func(_ context.Context, args map[string]any) (any, error) {
		if args == nil {
			return nil, fmt.Errorf("args must not be nil")
		}
		return len(args), nil
	})

	out, err := l.Invoke(context.Background(), "probe", nil, "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Unwrap() != 0 {
		t.Errorf("Unwrap() = %v, want 0", out.Unwrap())
	}
}

func TestLocal_StringResultClassified(t *testing.T) {
	l := NewLocal()
	l.Register("raw", func(_ context.Context, _ map[string]any) (any, error) {
		return `{"parsed":true}`, nil
	})
	l.Register("prose", func(_ context.Context, _ map[string]any) (any, error) {
		return "all good", nil
	})

	out, _ := l.Invoke(context.Background(), "raw", nil, "s")
	if out.Kind != OutcomeStructured {
		t.Errorf("JSON string result should classify structured, got %q", out.Kind)
	}
	out, _ = l.Invoke(context.Background(), "prose", nil, "s")
	if out.Kind != OutcomeText || out.Text != "all good" {
		t.Errorf("prose result should classify text, got %+v", out)
	}
}

func TestSession_OutsideHandler(t *testing.T) {
	if s := Session(context.Background()); s != "" {
		t.Errorf("Session outside a handler = %q, want empty", s)
	}
}
