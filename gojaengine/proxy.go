package gojaengine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dop251/goja"

	"github.com/jonwraymond/codemode"
	"github.com/jonwraymond/codemode/bridge"
)

// errorKindProp is the property the proxy stamps on rejection values so an
// uncaught rejection can be mapped back to its failure kind. Programs see
// the conventional name and message fields.
const errorKindProp = "__kind"

// bindGlobals installs the capability proxy and console into the runtime.
func bindGlobals(vm *goja.Runtime, ctx context.Context, env codemode.Env, proxyName string) {
	proxy := &capabilityProxy{vm: vm, ctx: ctx, env: env, names: env.Capabilities()}
	vm.Set(proxyName, vm.NewDynamicObject(proxy))
	vm.Set("console", newConsole(vm, env))
}

// capabilityProxy is the dynamic object bound as the capability surface.
// Property access always yields a callable, so typos fail at call time with
// a backend "unknown capability" rejection rather than a bare TypeError on
// property access.
type capabilityProxy struct {
	vm    *goja.Runtime
	ctx   context.Context
	env   codemode.Env
	names []string
}

func (p *capabilityProxy) Get(key string) goja.Value {
	return p.vm.ToValue(p.method(key))
}

func (p *capabilityProxy) Set(key string, val goja.Value) bool {
	return false
}

func (p *capabilityProxy) Has(key string) bool {
	for _, name := range p.names {
		if name == key {
			return true
		}
	}
	return false
}

func (p *capabilityProxy) Delete(key string) bool {
	return false
}

func (p *capabilityProxy) Keys() []string {
	return append([]string(nil), p.names...)
}

// method returns the callable for one capability. The bridge call completes
// synchronously, so the returned promise is always settled.
func (p *capabilityProxy) method(name string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		args := exportArgs(call)

		promise, resolve, reject := p.vm.NewPromise()
		value, err := p.env.Invoke(p.ctx, name, args)
		if err != nil {
			reject(p.rejectionValue(name, err))
		} else {
			resolve(p.vm.ToValue(value))
		}
		return p.vm.ToValue(promise)
	}
}

// rejectionValue builds the JS value a failed capability call rejects with.
// It carries name and message the way a JS Error would, so programs can
// inspect err.name to distinguish backend rejections from delivery
// failures.
func (p *capabilityProxy) rejectionValue(capability string, err error) goja.Value {
	kind := codemode.ClassifyFailure(err)

	obj := p.vm.NewObject()
	obj.Set("name", errorName(kind))
	obj.Set("message", err.Error())
	obj.Set("capability", capability)
	obj.Set(errorKindProp, string(kind))

	// Backend messages pass through verbatim, without any wrapping prefix.
	var appErr *bridge.ApplicationError
	if errors.As(err, &appErr) {
		obj.Set("message", appErr.Message)
	}
	var trErr *bridge.TransportError
	if errors.As(err, &trErr) {
		obj.Set("message", trErr.Message)
	}
	return obj
}

func errorName(kind codemode.FailureKind) string {
	switch kind {
	case codemode.FailureApplication:
		return "ApplicationError"
	case codemode.FailureTransport:
		return "TransportError"
	default:
		return "Error"
	}
}

// exportArgs converts the call's first argument to the bridge's arguments
// map. No argument, or a non-object argument, means an empty call.
func exportArgs(call goja.FunctionCall) map[string]any {
	if len(call.Arguments) == 0 {
		return nil
	}
	exported := call.Arguments[0].Export()
	if args, ok := exported.(map[string]any); ok {
		return args
	}
	return nil
}

// newConsole builds the console binding. Only log is provided; its output
// goes to the run's captured stdout.
func newConsole(vm *goja.Runtime, env codemode.Env) *goja.Object {
	console := vm.NewObject()
	console.Set("log", func(call goja.FunctionCall) goja.Value {
		parts := make([]any, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = consoleFormat(arg)
		}
		env.Println(parts...)
		return goja.Undefined()
	})
	return console
}

// consoleFormat renders one console.log argument. Strings print as-is;
// objects print as JSON so traces stay readable.
func consoleFormat(v goja.Value) any {
	exported := v.Export()
	switch val := exported.(type) {
	case string:
		return val
	case nil:
		return "null"
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	default:
		return exported
	}
}
