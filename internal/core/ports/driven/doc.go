// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CustomerSource: Fetches pages of customers from the e-commerce platform
//   - CustomerSourceFactory: Creates a CustomerSource from connection settings
//   - CustomerNormaliser: Maps raw customers into the local shape
//   - CustomerStore: Customer persistence
//   - WatermarkStore: Incremental sync boundary persistence
//   - SourceConfigStore: Connection settings persistence
//   - ActivityLog: Activity log sink
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SchedulerStore: Scheduler task history. Without it, history is not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
