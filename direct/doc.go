// Package direct implements conventional per-call tool dispatch over the
// same catalog and bridge the code executor uses.
//
// It is the baseline codemode is compared against: the model receives the
// catalog as an MCP tool list and issues one tool call per capability,
// paying a model round-trip for every step. Both paths share the catalog,
// the bridge, and the error taxonomy, so a comparison only varies the
// dispatch mechanism.
package direct
