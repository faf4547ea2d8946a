package codemode

import "context"

// Engine is the pluggable isolation mechanism that runs one program in a
// fresh context with no ambient capability beyond the provided Env.
//
// The Engine should:
//   - Interpret params.Source as a single zero-argument async (or plain)
//     function expression and invoke it exactly once.
//   - Inject a capability proxy whose property accesses always yield
//     callables dispatching to env.Invoke.
//   - Surface env.Invoke errors inside the program as catchable failures.
//   - Report the settled return value, or an error wrapping ErrExecution,
//     ErrTimeout, ErrCanceled, or the original bridge error.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use; runs must
//   not share state.
// - Context: must honor cancellation/deadlines and tear the context down
//   unconditionally when the run finishes.
// - Isolation: nothing in the hosting process is reachable from inside the
//   context except env; contexts are never reused across executions.
type Engine interface {
	// Execute runs one program against the given environment and returns
	// its resolved value or the classified failure.
	Execute(ctx context.Context, params EngineParams, env Env) (any, error)
}
