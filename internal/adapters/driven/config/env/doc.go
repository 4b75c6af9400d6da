// Package env overrides settings from EGGWMS_* environment variables and
// an optional .env file. Values set in the process environment win over
// the file.
//
//	EGGWMS_SYNC_INTERVAL=10m
//	EGGWMS_STORAGE_BACKEND=postgres
//	EGGWMS_STORAGE_POSTGRES_URL=postgres://wms@db/wms
package env
