// Package bridge is the remote-call path for capability invocations: it
// serializes one {name, arguments} call, sends it to the backend tool
// service identified by a session, and classifies the response.
//
// The central contract is [Invoker]. An invocation has exactly three
// outcomes:
//
//   - success: an [Outcome], tagged as structured data or raw text. A
//     successful textual payload that fails to parse as structured data is
//     returned as text, not as an error.
//   - [ApplicationError]: the backend explicitly rejected the operation
//     (not found, validation, authorization). The backend's message is
//     carried verbatim.
//   - [TransportError]: the backend was unreachable or its response framing
//     could not be understood.
//
// Both error kinds surface inside a sandboxed program as catchable failures;
// the bridge never exposes transport framing (streaming envelopes, protocol
// wrappers) to the executed code, and it never retries — retry policy
// belongs to the generated program or the outer agent loop.
//
// Two implementations are provided: [MCP], which addresses an MCP server
// through a per-session client session, and [Local], an in-process handler
// registry for tests and demos.
package bridge
