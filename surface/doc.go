// Package surface derives the generated surface from a capability catalog:
// a compact TypeScript declaration of the global proxy object for inclusion
// in a code-generation prompt, and a prose capability list for system
// prompts.
//
// Generation is pure and deterministic: the same catalog always yields
// byte-identical output, which is what makes fingerprint-keyed caching
// ([Cache]) sound. A capability field with an unrepresentable type degrades
// to an explicit opaque marker; generation never fails.
package surface
