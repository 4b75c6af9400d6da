// Package file provides the TOML configuration store.
//
// Settings live in ~/.eggwms/config.toml as nested tables:
//
//	[sync]
//	interval = "5m"
//	history_limit = 100
//
//	[storage]
//	backend = "sqlite"
//
// Keys are exposed flattened with dots ("sync.interval").
package file
