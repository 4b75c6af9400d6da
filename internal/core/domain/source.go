package domain

import (
	"strings"
	"time"
)

// SourceConfig holds the connection settings for the e-commerce platform.
type SourceConfig struct {
	// BaseURL is the store's API root, e.g. "mystore.example.com/api".
	BaseURL string

	// AccessToken is sent in the X-Access-Token header.
	AccessToken string

	// Connected is false after the user disconnects the source.
	Connected bool

	// UpdatedAt is when the settings were last changed.
	UpdatedAt time.Time
}

// IsConfigured returns true if the source can be synchronised.
func (c *SourceConfig) IsConfigured() bool {
	return c != nil && c.Connected && c.BaseURL != "" && c.AccessToken != ""
}

// MaskedToken returns the access token with all but the last four
// characters hidden.
func (c *SourceConfig) MaskedToken() string {
	if c == nil || c.AccessToken == "" {
		return ""
	}
	if len(c.AccessToken) <= 4 {
		return strings.Repeat("*", len(c.AccessToken))
	}
	return strings.Repeat("*", 8) + c.AccessToken[len(c.AccessToken)-4:]
}

// NormaliseBaseURL trims whitespace and trailing slashes and adds https:// when
// no scheme is present. Returns "" for a blank input.
func NormaliseBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimRight(raw, "/")
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	return raw
}
