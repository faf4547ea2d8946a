// Package codemode executes untrusted, model-generated programs against a
// capability catalog inside an isolated context, and returns a structured,
// tagged result.
//
// # Architecture
//
// The package defines three main interfaces:
//
//   - [Env]: the only ambient surface a program sees — capability
//     invocation bound to the run's backend session, captured output, and
//     the capability name list for proxy enumeration.
//
//   - [Engine]: the pluggable isolation mechanism. An engine provisions a
//     fresh context, injects the capability proxy, invokes the supplied
//     source as a single zero-argument function exactly once, and reports
//     the settled value or a classified error. gojaengine provides the
//     default implementation.
//
//   - [Executor]: the entry point. It validates configuration, applies
//     defaults and limits, provisions one Env per run, drives the engine
//     under a wall-clock budget, and converts every outcome — value, thrown
//     error, timeout, internal panic — into a tagged [Result]. Nothing
//     escapes as an unhandled crash.
//
// # Run lifecycle
//
// Created -> Provisioning -> Running -> Succeeded/Failed -> Torn down.
// Contexts are created per execution and never reused; teardown is
// unconditional, including when provisioning itself fails.
//
// # Limits
//
//   - Timeout: per-run wall-clock budget via context deadline; exceeding it
//     yields a Failed result with [FailureTimeout].
//   - MaxCapabilityCalls: bridge invocations per run; exceeding it yields
//     [ErrLimitExceeded] inside the program (catchable) and, if uncaught, a
//     Failed result with [FailureLimit].
//
// # Result convention
//
// A run's program is a single async (or plain) zero-argument function
// expression. Its resolved return value, which must be JSON-serializable,
// becomes Result.Result; any uncaught failure becomes Result.Error with a
// kind tag distinguishing program errors, backend rejections, transport
// failures, and timeouts.
//
// Every capability invocation is recorded in a [CallRecord] for
// observability: name, arguments, result or error, and duration.
package codemode
