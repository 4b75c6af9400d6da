package storefront

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

// maxErrorBody is how much of an error response body is kept.
const maxErrorBody = 512

// classifyResponse converts a non-success response into a SyncError.
func classifyResponse(resp *http.Response, rawURL string) *domain.SyncError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	se := &domain.SyncError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
		Err:        fmt.Errorf("GET %s: %s", redactURL(rawURL), http.StatusText(resp.StatusCode)),
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		se.Kind = domain.KindAuth
	case http.StatusNotFound:
		se.Kind = domain.KindNotFound
	case http.StatusTooManyRequests:
		se.Kind = domain.KindUpstream
		se.RetryAfter = ParseRetryAfter(resp)
	default:
		se.Kind = domain.KindUpstream
	}

	return se
}

// networkError classifies a failure where no response was received.
func networkError(rawURL string, err error) *domain.SyncError {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	return domain.NewSyncError(domain.KindNetwork, fmt.Errorf("GET %s: %w", redactURL(rawURL), err))
}

// foreignPageError reports a page URL outside the configured store. No
// request is made for it.
func foreignPageError(page, base *url.URL) *domain.SyncError {
	return domain.NewSyncError(domain.KindUpstream,
		fmt.Errorf("page URL %s://%s is outside %s://%s", page.Scheme, page.Host, base.Scheme, base.Host))
}

// decodeError classifies a success response whose body could not be decoded.
func decodeError(statusCode int, err error) *domain.SyncError {
	return &domain.SyncError{
		Kind:       domain.KindUpstream,
		StatusCode: statusCode,
		Err:        fmt.Errorf("decode customers page: %w", err),
	}
}

// redactURL strips the query string from a URL for error messages.
func redactURL(rawURL string) string {
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}
