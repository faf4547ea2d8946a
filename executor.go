package codemode

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Executor is the main entry point for running programs. It orchestrates
// provisioning, limits, and result collection.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use; runs for
//   different (or the same) session may overlap and must not interfere.
// - Context: must honor cancellation/deadlines.
// - Errors: never escape — every run returns a tagged Result.
// - Ownership: the request is read-only; the returned Result is
//   caller-owned.
type Executor interface {
	// Execute runs one program and returns its tagged result.
	Execute(ctx context.Context, req Request) Result
}

// DefaultExecutor is the standard implementation of Executor.
type DefaultExecutor struct {
	cfg Config
}

// NewDefaultExecutor creates a new DefaultExecutor with the given
// configuration. Returns ErrConfiguration if any required field is missing.
func NewDefaultExecutor(cfg Config) (*DefaultExecutor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &DefaultExecutor{cfg: cfg}, nil
}

// Execute runs one program. All failures — malformed source, uncaught
// program errors, backend rejections, timeouts, even internal panics — are
// captured as a Failed result; nothing propagates to the caller uncaught.
func (e *DefaultExecutor) Execute(ctx context.Context, req Request) Result {
	start := time.Now()

	execID := req.ExecutionID
	if execID == "" {
		execID = newExecutionID()
	}

	if req.SessionID == "" {
		return Result{
			Success:     false,
			Error:       "session id is required",
			Kind:        FailureExecution,
			ExecutionID: execID,
			DurationMs:  time.Since(start).Milliseconds(),
		}
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = e.cfg.DefaultTimeout
	}

	// Resolve the call limit: the request may lower the configured limit
	// but never raise it.
	maxCalls := req.MaxCapabilityCalls
	if e.cfg.MaxCapabilityCalls > 0 {
		if maxCalls == 0 || maxCalls > e.cfg.MaxCapabilityCalls {
			maxCalls = e.cfg.MaxCapabilityCalls
		}
	}

	runEnv := newEnv(e.cfg.Bridge, req.SessionID, e.cfg.Catalog.Names(), maxCalls, e.cfg.Logger)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	params := EngineParams{
		Source:      req.Source,
		ExecutionID: execID,
		Timeout:     timeout,
	}
	value, err := e.runEngine(ctx, params, runEnv)

	res := Result{
		ExecutionID: execID,
		Calls:       runEnv.Calls(),
		Stdout:      runEnv.Stdout(),
		DurationMs:  time.Since(start).Milliseconds(),
	}

	if e.cfg.Logger != nil {
		e.cfg.Logger.Logf("execution %s: %d capability calls in %dms",
			execID, len(res.Calls), res.DurationMs)
	}

	if err != nil {
		res.Success = false
		res.Kind = ClassifyFailure(err)
		res.Error = failureMessage(err, res.Kind, timeout)
		return res
	}

	res.Success = true
	res.Result = normalizeValue(value)
	return res
}

// runEngine invokes the engine with panic containment: a provisioning or
// engine fault becomes an execution failure, never a caller crash.
func (e *DefaultExecutor) runEngine(ctx context.Context, params EngineParams, env Env) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = fmt.Errorf("%w: internal failure: %v", ErrExecution, r)
		}
	}()
	return e.cfg.Engine.Execute(ctx, params, env)
}

// failureMessage renders the user-visible error. Backend messages and
// program error messages pass through verbatim; timeouts and cancellations
// get uniform messages so callers can surface them consistently.
func failureMessage(err error, kind FailureKind, timeout time.Duration) string {
	switch kind {
	case FailureTimeout:
		return fmt.Sprintf("execution timed out after %v", timeout)
	case FailureCanceled:
		return "execution canceled"
	default:
		return err.Error()
	}
}

// newExecutionID returns a fresh context identifier.
func newExecutionID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// Degraded but unique enough for correlation.
		return fmt.Sprintf("exec-%d", time.Now().UnixNano())
	}
	return "exec-" + hex.EncodeToString(b[:])
}
