// Package services provides domain services for rules that span aggregate
// boundaries or carry operational configuration the aggregates should not own.
//
// The package includes:
//   - ReturnPolicy: the configurable time window for post-delivery returns
//
// Domain services hold business logic that does not naturally belong to a
// single aggregate root, following Domain-Driven Design principles.
package services
