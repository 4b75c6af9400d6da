package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
	"github.com/jmachaddo/egg-back-home-wms/internal/logger"
	"github.com/jmachaddo/egg-back-home-wms/internal/metrics"
)

// Ensure Client implements the interface.
var _ driven.CustomerSource = (*Client)(nil)

// Default configuration values.
const (
	DefaultTimeout = 30 * time.Second

	// HeaderAccessToken carries the credential.
	HeaderAccessToken = "X-Access-Token"
)

// Config holds configuration for the storefront client.
type Config struct {
	// BaseURL is the store's API root (required). A scheme is added if missing.
	BaseURL string

	// AccessToken is the store credential (required).
	AccessToken string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond is the proactive throttle (default: 2).
	RequestsPerSecond float64

	// Burst is the throttle burst (default: 4).
	Burst int

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// Client fetches customer pages from the e-commerce platform.
type Client struct {
	http        *http.Client
	baseURL     string
	base        *url.URL
	accessToken string
	limiter     *RateLimiter
}

// customersResponse is the /customers response body.
type customersResponse struct {
	Customers []domain.RawCustomer `json:"customers"`
}

// NewClient creates a storefront client.
func NewClient(cfg Config) (*Client, error) {
	base := NormaliseBaseURL(cfg.BaseURL)
	if base == "" {
		return nil, fmt.Errorf("%w: storefront base URL is required", domain.ErrInvalidInput)
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%w: storefront base URL: %v", domain.ErrInvalidInput, err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("%w: storefront base URL %q has no host", domain.ErrInvalidInput, base)
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("%w: storefront access token is required", domain.ErrInvalidInput)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = DefaultRate
	}
	if cfg.Burst == 0 {
		cfg.Burst = DefaultBurst
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		http:        httpClient,
		baseURL:     base,
		base:        parsed,
		accessToken: cfg.AccessToken,
		limiter:     NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}, nil
}

// NormaliseBaseURL is domain.NormaliseBaseURL.
func NormaliseBaseURL(raw string) string {
	return domain.NormaliseBaseURL(raw)
}

// BaseURL returns the normalised base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// InitialURL returns the first page URL.
// The page size is always domain.MaxPageLimit, whatever the expected result size.
func (c *Client) InitialURL(since *time.Time) string {
	return c.customersURL(domain.MaxPageLimit, since)
}

func (c *Client) customersURL(limit int, since *time.Time) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if since != nil {
		q.Set("updated_since", since.UTC().Format(time.RFC3339))
	}
	return c.baseURL + "/customers?" + q.Encode()
}

// FetchPage fetches one page of customers. The access token is only sent
// to the base URL's scheme and host; any other page URL is rejected.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (*domain.CustomerPage, error) {
	target, err := c.resolvePage(pageURL)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, networkError(pageURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), http.NoBody)
	if err != nil {
		return nil, domain.NewSyncError(domain.KindUpstream, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set(HeaderAccessToken, c.accessToken)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.SourceRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SourceRequestsTotal.WithLabelValues("error").Inc()
		return nil, networkError(pageURL, err)
	}
	defer resp.Body.Close()

	metrics.SourceRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	logger.Debug("storefront: GET %s -> %d", redactURL(pageURL), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyResponse(resp, pageURL)
	}

	var body customersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, decodeError(resp.StatusCode, err)
	}

	return &domain.CustomerPage{
		Records: body.Customers,
		NextURL: ParseNextLink(resp.Header.Get("Link")),
	}, nil
}

// resolvePage resolves pageURL against the base URL and checks it stays
// on the same origin.
func (c *Client) resolvePage(pageURL string) (*url.URL, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, domain.NewSyncError(domain.KindUpstream, fmt.Errorf("invalid page URL %q: %w", redactURL(pageURL), err))
	}
	u = c.base.ResolveReference(u)
	if !strings.EqualFold(u.Scheme, c.base.Scheme) || !strings.EqualFold(u.Host, c.base.Host) {
		return nil, foreignPageError(u, c.base)
	}
	return u, nil
}

// Ping requests a single customer to check the URL and credentials.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.FetchPage(ctx, c.customersURL(1, nil))
	return err
}
