// Package storefront implements the client for the e-commerce platform's
// customer API.
//
// # Architecture
//
// The client follows the driven port pattern defined in [driven.CustomerSource].
// It comprises the following components:
//
//   - Client: issues page requests and classifies failures
//   - Factory: builds a Client from the stored connection settings
//   - Link parsing: extracts the next-page cursor from the Link header
//   - RateLimiter: proactive throttling of outgoing requests
//
// # Authentication
//
// The access token is sent in the X-Access-Token header. It is never
// placed in a URL.
//
// # Pagination
//
// The first request is GET {base}/customers?limit=250, optionally with
// updated_since set to the sync watermark. Subsequent pages are addressed
// by the opaque URL found in the Link header entry with rel="next".
// A missing or malformed header means there are no further pages.
//
// # Error Handling
//
// Every failure is returned as a [domain.SyncError]:
//
//   - 401 and 403: [domain.KindAuth]
//   - 404: [domain.KindNotFound]
//   - no response received: [domain.KindNetwork]
//   - any other non-success status or an undecodable body: [domain.KindUpstream]
//
// Nothing is retried inside the client. A 429 records Retry-After on the error.
package storefront
