package bridge

import "context"

// OutcomeKind tags how a successful payload was interpreted.
type OutcomeKind string

const (
	// OutcomeStructured means the payload parsed as structured data and
	// Value holds it.
	OutcomeStructured OutcomeKind = "structured"

	// OutcomeText means the payload was textual and did not parse as
	// structured data; Text holds it as-is.
	OutcomeText OutcomeKind = "text"
)

// Outcome is one successful capability invocation result, already unwrapped
// from any transport framing.
type Outcome struct {
	Kind  OutcomeKind
	Value any
	Text  string
}

// Unwrap returns the payload as a plain value: the structured data, or the
// raw text for a text outcome.
func (o Outcome) Unwrap() any {
	if o.Kind == OutcomeText {
		return o.Text
	}
	return o.Value
}

// Structured wraps parsed data in a structured outcome.
func Structured(v any) Outcome {
	return Outcome{Kind: OutcomeStructured, Value: v}
}

// Text wraps a raw textual payload in a text outcome.
func Text(s string) Outcome {
	return Outcome{Kind: OutcomeText, Text: s}
}

// Invoker performs capability invocations against a backend tool service.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use; calls for
//   different sessions must not interfere.
// - Context: must honor cancellation/deadlines.
// - State: sessionID is data, not connection state; implementations must not
//   cache it across calls.
// - Errors: backend rejections are *ApplicationError, delivery failures are
//   *TransportError. No automatic retries.
// - Nil/zero: nil args are treated as an empty arguments object.
type Invoker interface {
	// Invoke sends one {name, args} call to the backend associated with
	// sessionID and returns the classified outcome.
	Invoke(ctx context.Context, name string, args map[string]any, sessionID string) (Outcome, error)
}
