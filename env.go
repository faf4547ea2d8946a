package codemode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonwraymond/codemode/bridge"
)

// Env is the capability environment injected into an isolated context. It is
// the only ambient surface a program has: capability invocation bound to the
// run's session, captured output, and the declared capability names.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Invoke must honor cancellation/deadlines.
// - Errors: bridge failures propagate typed (*bridge.ApplicationError,
//   *bridge.TransportError); limit violations wrap ErrLimitExceeded.
// - Ownership: args are read-only; recorded traces are snapshots.
// - Nil/zero: nil args are treated as an empty arguments object.
type Env interface {
	// Invoke performs one capability call through the bridge, records it
	// in the call trace, and returns the unwrapped value.
	Invoke(ctx context.Context, name string, args map[string]any) (any, error)

	// Println writes output to the captured stdout buffer.
	Println(args ...any)

	// Capabilities returns the declared capability names in catalog
	// order, for proxy enumeration.
	Capabilities() []string
}

// env is the per-run Env implementation. One env is created per execution
// and discarded with it; the session identifier is bound at construction and
// never cached anywhere reusable.
type env struct {
	invoker   bridge.Invoker
	sessionID string
	names     []string
	maxCalls  int
	logger    Logger

	mu        sync.Mutex
	callCount int
	calls     []CallRecord
	stdout    strings.Builder
}

// newEnv creates the environment for a single run. If maxCalls is 0 the
// call count is unlimited.
func newEnv(invoker bridge.Invoker, sessionID string, names []string, maxCalls int, logger Logger) *env {
	return &env{
		invoker:   invoker,
		sessionID: sessionID,
		names:     names,
		maxCalls:  maxCalls,
		logger:    logger,
	}
}

func (e *env) Invoke(ctx context.Context, name string, args map[string]any) (any, error) {
	e.mu.Lock()
	if e.maxCalls > 0 && e.callCount >= e.maxCalls {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: max capability calls (%d) exceeded",
			ErrLimitExceeded, e.maxCalls)
	}
	e.callCount++
	e.mu.Unlock()

	start := time.Now()
	out, err := e.invoker.Invoke(ctx, name, args, e.sessionID)
	duration := time.Since(start).Milliseconds()

	record := CallRecord{
		Capability: name,
		Args:       normalizeArgs(args),
		DurationMs: duration,
	}
	if err != nil {
		record.Error = err.Error()
		record.Kind = ClassifyFailure(err)
		e.record(record)
		if e.logger != nil {
			e.logger.Logf("capability %s failed in %dms: %v", name, duration, err)
		}
		return nil, err
	}

	value := normalizeValue(out.Unwrap())
	record.Value = value
	e.record(record)
	return value, nil
}

func (e *env) Println(args ...any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fmt.Fprintln(&e.stdout, args...)
}

func (e *env) Capabilities() []string {
	return append([]string(nil), e.names...)
}

func (e *env) record(r CallRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, r)
}

// Calls returns a copy of the recorded capability invocations.
func (e *env) Calls() []CallRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]CallRecord(nil), e.calls...)
}

// Stdout returns the captured output.
func (e *env) Stdout() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stdout.String()
}

// ClassifyFailure maps an error to its failure kind. Engine and bridge
// implementations use it to keep their reported kinds consistent with the
// executor's.
func ClassifyFailure(err error) FailureKind {
	switch {
	case errors.Is(err, bridge.ErrApplication):
		return FailureApplication
	case errors.Is(err, bridge.ErrTransport):
		return FailureTransport
	case errors.Is(err, ErrLimitExceeded):
		return FailureLimit
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return FailureTimeout
	case errors.Is(err, ErrCanceled), errors.Is(err, context.Canceled):
		return FailureCanceled
	default:
		return FailureExecution
	}
}
