// Package gojaengine implements the codemode Engine on the goja JavaScript
// interpreter.
//
// Each run gets a fresh goja runtime: no globals, no module loader, no
// network, no filesystem. The only ambient surface is the capability proxy
// (bound under the configured global name) and a minimal console whose
// output is captured into the run's stdout buffer.
//
// The program must be a single function expression. It is evaluated inside
// parentheses, invoked with no arguments, and its return value — awaited if
// it is a promise — becomes the run result. Capability proxy methods return
// promises; because bridge calls complete synchronously, every proxy promise
// is settled by the time the program observes it, and goja's job queue
// drains before control returns to the host. A promise that is still
// pending after the queue drains can never settle, so the engine reports it
// as a timeout rather than waiting out the full budget.
//
// Wall-clock enforcement uses goja's Interrupt: a watchdog goroutine
// interrupts the runtime when the run context is done, which stops even a
// busy loop that never yields.
package gojaengine
