package bridge

import (
	"context"
	"fmt"
	"sync"
)

// Handler implements one capability in process. The run's session identifier
// is available via Session(ctx).
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Local is an in-process backend tool service: a handler registry keyed by
// capability name. It is the bridge used by tests and demos, and the
// reference for error classification — handler errors become
// ApplicationErrors, and an unregistered name is the "unknown capability"
// rejection.
type Local struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewLocal creates an empty local bridge.
func NewLocal() *Local {
	return &Local{handlers: make(map[string]Handler)}
}

// Register adds a handler for a capability name, replacing any previous one.
func (l *Local) Register(name string, h Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers[name] = h
}

// Invoke implements Invoker.
func (l *Local) Invoke(ctx context.Context, name string, args map[string]any, sessionID string) (Outcome, error) {
	if args == nil {
		args = map[string]any{}
	}

	l.mu.RLock()
	h, ok := l.handlers[name]
	l.mu.RUnlock()
	if !ok {
		return Outcome{}, &ApplicationError{
			Capability: name,
			Message:    fmt.Sprintf("unknown capability: %s", name),
		}
	}

	v, err := h(withSession(ctx, sessionID), args)
	if err != nil {
		return Outcome{}, &ApplicationError{
			Capability: name,
			Message:    err.Error(),
		}
	}
	if s, ok := v.(string); ok {
		return classifyText(s), nil
	}
	return Structured(v), nil
}

type sessionKey struct{}

func withSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

// Session returns the session identifier of the invocation a handler is
// serving, or "" outside a handler.
func Session(ctx context.Context) string {
	s, _ := ctx.Value(sessionKey{}).(string)
	return s
}
