package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSyncInProgress indicates a sync is already running.
	ErrSyncInProgress = errors.New("sync in progress")

	// Sync Errors.

	// ErrSourceNotConnected indicates the e-commerce source is not configured or disconnected.
	ErrSourceNotConnected = errors.New("source not connected")

	// ErrAuthRejected indicates the source rejected the access token.
	ErrAuthRejected = errors.New("access token rejected")

	// ErrSourceNotFound indicates the source URL does not point at a valid store.
	ErrSourceNotFound = errors.New("source not found")

	// ErrNetwork indicates no response reached the client.
	ErrNetwork = errors.New("network error")

	// ErrUpstream indicates the source returned an unexpected non-success status.
	ErrUpstream = errors.New("upstream error")

	// ErrStorage indicates the local store failed.
	ErrStorage = errors.New("storage error")
)

// ErrorKind classifies a sync failure.
type ErrorKind string

// Sync failure kinds.
const (
	KindConfiguration ErrorKind = "configuration"
	KindAuth          ErrorKind = "auth"
	KindNotFound      ErrorKind = "not_found"
	KindNetwork       ErrorKind = "network"
	KindUpstream      ErrorKind = "upstream"
	KindStorage       ErrorKind = "storage"
	KindUnknown       ErrorKind = "unknown"
)

// sentinel returns the package-level error for a kind, or nil for KindUnknown.
func (k ErrorKind) sentinel() error {
	switch k {
	case KindConfiguration:
		return ErrSourceNotConnected
	case KindAuth:
		return ErrAuthRejected
	case KindNotFound:
		return ErrSourceNotFound
	case KindNetwork:
		return ErrNetwork
	case KindUpstream:
		return ErrUpstream
	case KindStorage:
		return ErrStorage
	default:
		return nil
	}
}

// SyncError is a classified synchronisation failure.
// Classification happens where the failure is observed (HTTP client, store),
// never by inspecting message text later.
type SyncError struct {
	// Kind is the failure class.
	Kind ErrorKind

	// StatusCode is the HTTP status for auth, not found and upstream failures.
	StatusCode int

	// Body is the (truncated) response body for upstream failures.
	Body string

	// RetryAfter is the delay requested by the source on a 429, if any.
	RetryAfter time.Duration

	// Err is the underlying cause.
	Err error
}

// NewSyncError creates a classified error wrapping cause.
func NewSyncError(kind ErrorKind, cause error) *SyncError {
	return &SyncError{Kind: kind, Err: cause}
}

// Error implements error.
func (e *SyncError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	} else if s := e.Kind.sentinel(); s != nil {
		b.WriteString(": ")
		b.WriteString(s.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is and errors.As.
func (e *SyncError) Unwrap() []error {
	var errs []error
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Message returns the user-readable text for the failure.
func (e *SyncError) Message() string {
	switch e.Kind {
	case KindConfiguration:
		return "The e-commerce source is not connected. Configure the store URL and access token in Settings > Integrations."
	case KindAuth:
		return "The access token was rejected. Check that the token is valid and has permission to read customers."
	case KindNotFound:
		return "The store was not found. Check that the store URL is correct."
	case KindNetwork:
		return "Could not reach the store. Check the network connection and the store URL."
	case KindStorage:
		return "Saving customers failed: " + e.causeText()
	case KindUpstream:
		if e.StatusCode == 429 {
			return "The store is rate limiting requests. The next sync will retry."
		}
		if e.StatusCode == 0 {
			return "The store returned an unexpected response: " + e.causeText()
		}
		return fmt.Sprintf("The store returned an unexpected response (HTTP %d): %s", e.StatusCode, e.causeText())
	default:
		return "Sync failed: " + e.causeText()
	}
}

func (e *SyncError) causeText() string {
	if e.Body != "" {
		return e.Body
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

// ClassifyError converts any error into a SyncError.
// An error that already carries a SyncError is returned as that SyncError;
// anything else is wrapped as KindUnknown. Returns nil for a nil error.
func ClassifyError(err error) *SyncError {
	if err == nil {
		return nil
	}
	var se *SyncError
	if errors.As(err, &se) {
		return se
	}
	return &SyncError{Kind: KindUnknown, Err: err}
}

// IsKind reports whether err is a SyncError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *SyncError
	return errors.As(err, &se) && se.Kind == kind
}
