// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The sync orchestrator pulls customers page by page, upserts them and
// advances the watermark. The scheduler runs it on an interval or cron
// schedule and records task history.
package services
