package gojaengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/dop251/goja"

	"github.com/jonwraymond/codemode"
	"github.com/jonwraymond/codemode/bridge"
	"github.com/jonwraymond/codemode/surface"
)

// Engine runs programs on the goja JavaScript interpreter. The zero value
// is not usable; construct with New.
type Engine struct {
	proxyName string
}

// Option configures an Engine.
type Option func(*Engine)

// WithProxyName overrides the global name the capability proxy is bound
// under. It must match the name the surface generator advertised, or
// programs written against the surface will not find the proxy.
func WithProxyName(name string) Option {
	return func(e *Engine) {
		e.proxyName = name
	}
}

// New creates a goja-backed engine. By default the capability proxy is
// bound as surface.DefaultProxyName.
func New(opts ...Option) *Engine {
	e := &Engine{proxyName: surface.DefaultProxyName}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute evaluates the program in a fresh runtime and returns its resolved
// value. The source must be a single function expression; it is invoked
// with no arguments and its (awaited) return value is exported to Go.
func (e *Engine) Execute(ctx context.Context, params codemode.EngineParams, env codemode.Env) (any, error) {
	if params.Source == "" {
		return nil, &codemode.CodeError{Message: "empty program source"}
	}

	vm := goja.New()
	bindGlobals(vm, ctx, env, e.proxyName)

	// Watchdog: interrupt the runtime as soon as the run context is done
	// so busy loops cannot outlive the budget.
	watchdogDone := make(chan struct{})
	defer close(watchdogDone)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-watchdogDone:
		}
	}()

	// Parentheses force expression position: a bare function declaration
	// or object literal would otherwise parse as a statement.
	value, err := vm.RunString("(" + params.Source + ")")
	if err != nil {
		return nil, runError(ctx, err)
	}

	fn, ok := goja.AssertFunction(value)
	if !ok {
		return nil, &codemode.CodeError{Message: "program source must be a function expression"}
	}

	ret, err := fn(goja.Undefined())
	if err != nil {
		return nil, runError(ctx, err)
	}

	return settle(ctx, ret)
}

// settle resolves the program's return value. goja drains its promise job
// queue before a call returns to the host, so a promise that is still
// pending here is awaiting something nothing will ever resolve.
func settle(ctx context.Context, v goja.Value) (any, error) {
	promise, ok := v.Export().(*goja.Promise)
	if !ok {
		return v.Export(), nil
	}

	switch promise.State() {
	case goja.PromiseStateFulfilled:
		return promise.Result().Export(), nil
	case goja.PromiseStateRejected:
		return nil, thrownError(promise.Result())
	default:
		if err := ctx.Err(); err != nil {
			return nil, contextError(err)
		}
		return nil, codemode.ErrTimeout
	}
}

// runError maps a goja evaluation error to the engine's error taxonomy.
func runError(ctx context.Context, err error) error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return contextError(ctxErr)
		}
		return codemode.ErrCanceled
	}

	var ex *goja.Exception
	if errors.As(err, &ex) {
		return thrownError(ex.Value())
	}

	// Parse or compile failure.
	return &codemode.CodeError{Message: err.Error(), Err: err}
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return codemode.ErrTimeout
	}
	return codemode.ErrCanceled
}

// thrownError reconstructs a typed error from a thrown or rejected JS
// value. Errors the capability proxy injected carry a kind marker and map
// back to the bridge taxonomy; everything else is a program error.
func thrownError(v goja.Value) error {
	obj, ok := v.(*goja.Object)
	if !ok {
		return &codemode.CodeError{Message: stringProp(v)}
	}

	message := stringField(obj, "message")
	capability := stringField(obj, "capability")

	switch stringField(obj, errorKindProp) {
	case string(codemode.FailureApplication):
		return &bridge.ApplicationError{Capability: capability, Message: message}
	case string(codemode.FailureTransport):
		return &bridge.TransportError{Capability: capability, Message: message}
	case string(codemode.FailureLimit):
		return fmt.Errorf("%w: %s", codemode.ErrLimitExceeded, message)
	case string(codemode.FailureTimeout):
		return codemode.ErrTimeout
	case string(codemode.FailureCanceled):
		return codemode.ErrCanceled
	}

	if message == "" {
		return &codemode.CodeError{Message: stringProp(v)}
	}
	return &codemode.CodeError{Message: message}
}

func stringField(obj *goja.Object, key string) string {
	v := obj.Get(key)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return ""
	}
	return v.String()
}

func stringProp(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return "unknown error"
	}
	return v.String()
}
