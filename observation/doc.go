// Package observation provides the foundational data model shared by both
// execution engines. It defines:
//
//   - Measurement (result-or-failure plus wall-clock duration of one path)
//   - Observation (the paired control/experiment outcome of one evaluation)
//   - Comparator (the asymmetric experiment-compares-to-control relation)
//   - Publisher (caller-supplied consumer of an Observation)
//   - Capture (the timing + panic-isolation boundary used by the sync engine)
//
// The package is a leaf: it depends on nothing else in the module except
// internal/util for observation identifiers. Engines, publishers and callers
// all communicate through the types defined here.
package observation
