// Package connectors holds the clients that fetch customers from external
// e-commerce platforms. Each sub-package implements driven.CustomerSource
// and driven.CustomerSourceFactory for one platform.
//
// The storefront package speaks the REST customers API with cursor
// pagination carried in the Link header.
package connectors
