// Package postgres provides a PostgreSQL implementation of the driven store
// interfaces for deployments where several dashboard instances share one database.
//
// Connections are pooled with pgx (pgxpool). The schema is managed with goose;
// migrations are embedded and applied when the store opens.
//
// The store implements:
//
//   - CustomerStore: one transaction per batch, sent as a pgx.Batch
//   - WatermarkStore
//   - SourceConfigStore
//   - ActivityLog
//   - SchedulerStore
package postgres
