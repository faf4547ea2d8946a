package codemode

import "time"

// Request describes one execution. Requests are created per invocation and
// discarded when the run completes; nothing about them is persisted.
type Request struct {
	// Source is the program: a single zero-argument async (or plain)
	// function expression.
	Source string `json:"source"`

	// SessionID is the opaque backend session identifier every capability
	// call of this run is scoped to. Required.
	SessionID string `json:"sessionId"`

	// ExecutionID uniquely identifies the run's isolated context. If
	// empty, the executor generates one.
	ExecutionID string `json:"executionId,omitempty"`

	// Timeout overrides the executor's default wall-clock budget.
	Timeout time.Duration `json:"timeout,omitempty"`

	// MaxCapabilityCalls overrides the executor's capability call limit
	// for this run; the configured limit still caps it.
	MaxCapabilityCalls int `json:"maxCapabilityCalls,omitempty"`
}

// FailureKind distinguishes why a run failed.
type FailureKind string

const (
	// FailureExecution: the program was malformed or threw a plain error.
	FailureExecution FailureKind = "execution"

	// FailureApplication: an uncaught backend rejection.
	FailureApplication FailureKind = "application"

	// FailureTransport: an uncaught backend delivery failure.
	FailureTransport FailureKind = "transport"

	// FailureTimeout: the run exceeded its budget or can never settle.
	FailureTimeout FailureKind = "timeout"

	// FailureLimit: an execution limit was exceeded.
	FailureLimit FailureKind = "limit"

	// FailureCanceled: the caller abandoned the run.
	FailureCanceled FailureKind = "canceled"
)

// CallRecord captures one capability invocation made during a run.
type CallRecord struct {
	// Capability is the invoked capability name.
	Capability string `json:"capability"`

	// Args contains the arguments passed to the capability.
	Args map[string]any `json:"args,omitempty"`

	// Value is the unwrapped result of a successful invocation.
	Value any `json:"value,omitempty"`

	// Error is the failure message if the invocation failed.
	Error string `json:"error,omitempty"`

	// Kind classifies a failed invocation.
	Kind FailureKind `json:"kind,omitempty"`

	// DurationMs is the invocation time in milliseconds.
	DurationMs int64 `json:"durationMs"`
}

// Result is the tagged outcome of one run. It is always JSON-serializable
// and safe to embed in a conversational response: failures carry a message,
// never a host stack trace.
type Result struct {
	// Success tags the result.
	Success bool `json:"success"`

	// Result is the program's resolved return value when Success is true.
	// The executor passes it through without interpreting its shape.
	Result any `json:"result,omitempty"`

	// Error is the failure message when Success is false.
	Error string `json:"error,omitempty"`

	// Kind classifies the failure when Success is false.
	Kind FailureKind `json:"kind,omitempty"`

	// ExecutionID identifies the run's isolated context, for correlation.
	ExecutionID string `json:"executionId,omitempty"`

	// Calls records every capability invocation made during the run.
	Calls []CallRecord `json:"calls,omitempty"`

	// Stdout contains output captured from the program.
	Stdout string `json:"stdout,omitempty"`

	// DurationMs is the total run time in milliseconds.
	DurationMs int64 `json:"durationMs"`
}

// EngineParams specifies one engine run.
type EngineParams struct {
	// Source is the program text.
	Source string

	// ExecutionID scopes the isolated context.
	ExecutionID string

	// Timeout is the wall-clock budget the surrounding context already
	// enforces; engines may use it for their own accounting.
	Timeout time.Duration
}
