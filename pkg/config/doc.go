// Package config loads declarative CAN interface configuration from YAML
// files. Each file names the interfaces it applies to via a match pattern
// and carries the raw parameter values for them.
//
// Loading is strict about structure (unknown keys, non-scalar values, and
// a missing match pattern fail the load) but tolerant about values: a
// malformed or out-of-range value is reported as a warning during Resolve
// and the corresponding parameter keeps its previous value.
package config
