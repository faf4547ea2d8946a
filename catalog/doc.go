// Package catalog defines the capability catalog: the closed, immutable set
// of typed backend operations exposed to generated code.
//
// A [Catalog] is built once at process start from a static declaration,
// either in Go via [New] or from a YAML file via [LoadFile]. Construction
// validates the declaration (unique names, identifier-safe names, well-formed
// field types) and fails with [ErrDeclaration] on any violation; there is no
// runtime mutation API. Adding a capability means redeploying with a new
// declaration, not calling a method.
//
// Field types are a closed tagged variant ([FieldType]): string, number,
// boolean, enum-of-literals, array-of, object, and opaque. Downstream
// renderers switch on [Kind] rather than inspecting runtime values.
//
// The catalog is safely shared, without locking, by any number of concurrent
// executions. [Catalog.Fingerprint] provides a stable content hash used as
// the cache key for generated surfaces.
package catalog
