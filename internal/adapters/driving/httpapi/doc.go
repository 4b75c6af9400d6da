// Package httpapi exposes customer synchronisation over HTTP for the
// dashboard and other callers inside the warehouse network.
//
// Routes live under /api/v1. /healthz and /metrics are public; everything
// else requires the X-API-Key header when an API key is configured. The
// X-User header names the acting user in the activity log.
package httpapi
