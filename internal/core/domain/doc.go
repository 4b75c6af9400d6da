// Package domain defines the core business entities for the warehouse dashboard.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Customer: A customer record reconciled from the e-commerce platform
//   - SyncWatermark: The incremental sync boundary per entity type
//   - SyncSession: The in-memory state of the running synchronisation
//   - SourceConfig: Connection settings for the e-commerce platform
//   - LogEntry: An activity log record shown in the dashboard
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
