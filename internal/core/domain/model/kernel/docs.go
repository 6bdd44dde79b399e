// Package kernel provides core domain primitives shared across the dispatch
// domain model.
//
// The package currently contains:
//   - UUID: a value object for unique identifiers with validation and
//     comparison capabilities
//
// These primitives are immutable and thread-safe, and exist so that aggregate
// packages (order, driver) never depend on third-party identifier libraries
// directly.
package kernel
