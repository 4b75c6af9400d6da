package storefront

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:           server.URL + "/",
		AccessToken:       "shpat_test",
		RequestsPerSecond: -1,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{AccessToken: "tok"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewClient(Config{BaseURL: "shop.example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	client, err := NewClient(Config{BaseURL: "shop.example.com", AccessToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com", client.BaseURL())

	_, err = NewClient(Config{BaseURL: "https://", AccessToken: "tok"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormaliseBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"shop.example.com", "https://shop.example.com"},
		{"shop.example.com/", "https://shop.example.com"},
		{"http://localhost:8080/api//", "http://localhost:8080/api"},
		{" https://shop.example.com/admin ", "https://shop.example.com/admin"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormaliseBaseURL(tt.in))
		})
	}
}

func TestClient_InitialURL(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "shop.example.com", AccessToken: "tok"})
	require.NoError(t, err)

	t.Run("full collection", func(t *testing.T) {
		u, err := url.Parse(client.InitialURL(nil))
		require.NoError(t, err)

		assert.Equal(t, "/customers", u.Path)
		assert.Equal(t, "250", u.Query().Get("limit"))
		assert.False(t, u.Query().Has("updated_since"))
	})

	t.Run("incremental", func(t *testing.T) {
		since := time.Date(2026, 3, 14, 9, 26, 53, 0, time.FixedZone("WET", 0))
		u, err := url.Parse(client.InitialURL(&since))
		require.NoError(t, err)

		assert.Equal(t, "2026-03-14T09:26:53Z", u.Query().Get("updated_since"))
		assert.NotContains(t, u.String(), "tok")
	})
}

func TestClient_FetchPage_Success(t *testing.T) {
	var gotToken, gotAccept string
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get(HeaderAccessToken)
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Link", fmt.Sprintf(`<%s/customers?page_info=next1>; rel="next"`, server.URL))
		_, _ = w.Write([]byte(`{"customers":[{"id":1,"first_name":"Ana","last_name":"Silva"},{"id":2,"email":"b@example.com"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	page, err := client.FetchPage(context.Background(), client.InitialURL(nil))
	require.NoError(t, err)

	assert.Equal(t, "shpat_test", gotToken)
	assert.Equal(t, "application/json", gotAccept)
	require.Len(t, page.Records, 2)
	assert.Equal(t, "1", page.Records[0].ID.String())
	assert.Equal(t, server.URL+"/customers?page_info=next1", page.NextURL)
	assert.True(t, page.HasNext())
}

func TestClient_FetchPage_MixedIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"customers":[{"id":123,"first_name":"Ana"},{"id":"C-001","first_name":"Rui"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	page, err := client.FetchPage(context.Background(), client.InitialURL(nil))
	require.NoError(t, err)

	require.Len(t, page.Records, 2)
	assert.Equal(t, "123", page.Records[0].ID.String())
	assert.Equal(t, "C-001", page.Records[1].ID.String())
}

func TestClient_FetchPage_NextLinkWithComma(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Link", fmt.Sprintf(`<%s/customers?fields=id,email&page_info=n>; rel="next"`, server.URL))
		_, _ = w.Write([]byte(`{"customers":[{"id":1}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	page, err := client.FetchPage(context.Background(), client.InitialURL(nil))
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/customers?fields=id,email&page_info=n", page.NextURL)
}

func TestClient_FetchPage_RejectsOtherHosts(t *testing.T) {
	var foreignHits int
	var foreignToken string
	foreign := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		foreignHits++
		foreignToken = r.Header.Get(HeaderAccessToken)
		_, _ = w.Write([]byte(`{"customers":[]}`))
	}))
	defer foreign.Close()

	store := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Link", fmt.Sprintf(`<%s/customers?page_info=n>; rel="next"`, foreign.URL))
		_, _ = w.Write([]byte(`{"customers":[{"id":1}]}`))
	}))
	defer store.Close()

	client := newTestClient(t, store)
	page, err := client.FetchPage(context.Background(), client.InitialURL(nil))
	require.NoError(t, err)
	require.True(t, page.HasNext())

	_, err = client.FetchPage(context.Background(), page.NextURL)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Zero(t, foreignHits)
	assert.Empty(t, foreignToken)
}

func TestClient_FetchPage_RelativeNextLink(t *testing.T) {
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get(HeaderAccessToken)
		assert.Equal(t, "n", r.URL.Query().Get("page_info"))
		_, _ = w.Write([]byte(`{"customers":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.FetchPage(context.Background(), "/customers?page_info=n")
	require.NoError(t, err)
	assert.Equal(t, "shpat_test", gotToken)
}

func TestClient_FetchPage_LastPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Link", `<https://shop/customers?page_info=p>; rel="previous"`)
		_, _ = w.Write([]byte(`{"customers":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	page, err := client.FetchPage(context.Background(), client.InitialURL(nil))
	require.NoError(t, err)

	assert.Empty(t, page.Records)
	assert.Empty(t, page.NextURL)
}

func TestClient_FetchPage_MalformedLinkHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Link", `<<<>>>; rel=, garbage;;"`)
		_, _ = w.Write([]byte(`{"customers":[{"id":5}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	page, err := client.FetchPage(context.Background(), client.InitialURL(nil))
	require.NoError(t, err)

	assert.Len(t, page.Records, 1)
	assert.Empty(t, page.NextURL)
}

func TestClient_FetchPage_StatusClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind domain.ErrorKind
		sentinel error
	}{
		{"unauthorized", http.StatusUnauthorized, "Invalid API key", domain.KindAuth, domain.ErrAuthRejected},
		{"forbidden", http.StatusForbidden, "", domain.KindAuth, domain.ErrAuthRejected},
		{"not found", http.StatusNotFound, "Not Found", domain.KindNotFound, domain.ErrSourceNotFound},
		{"server error", http.StatusInternalServerError, "boom", domain.KindUpstream, domain.ErrUpstream},
		{"bad gateway", http.StatusBadGateway, "upstream timeout", domain.KindUpstream, domain.ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server)
			page, err := client.FetchPage(context.Background(), client.InitialURL(nil))

			assert.Nil(t, page)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			se := domain.ClassifyError(err)
			assert.Equal(t, tt.wantKind, se.Kind)
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.body, se.Body)
		})
	}
}

func TestClient_FetchPage_TruncatesErrorBody(t *testing.T) {
	long := make([]byte, 4096)
	for i := range long {
		long[i] = 'x'
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write(long)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.FetchPage(context.Background(), client.InitialURL(nil))

	se := domain.ClassifyError(err)
	assert.Len(t, se.Body, maxErrorBody)
}

func TestClient_FetchPage_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(HeaderRetryAfter, "2")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.FetchPage(context.Background(), client.InitialURL(nil))

	se := domain.ClassifyError(err)
	assert.Equal(t, domain.KindUpstream, se.Kind)
	assert.Equal(t, 2*time.Second, se.RetryAfter)
}

func TestClient_FetchPage_UndecodableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.FetchPage(context.Background(), client.InitialURL(nil))

	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Equal(t, http.StatusOK, domain.ClassifyError(err).StatusCode)
}

func TestClient_FetchPage_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client := newTestClient(t, server)
	pageURL := client.InitialURL(nil)
	server.Close()

	_, err := client.FetchPage(context.Background(), pageURL)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.True(t, domain.IsKind(err, domain.KindNetwork))
	assert.NotContains(t, err.Error(), "shpat_test")
}

func TestClient_Ping(t *testing.T) {
	var gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`{"customers":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, "1", gotLimit)
}

func TestFactory_Create(t *testing.T) {
	f := NewFactory()

	src, err := f.Create(domain.SourceConfig{BaseURL: "shop.example.com", AccessToken: "tok", Connected: true})
	require.NoError(t, err)
	assert.Contains(t, src.InitialURL(nil), "limit=250")

	_, err = f.Create(domain.SourceConfig{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseRetryAfter(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	assert.Zero(t, ParseRetryAfter(nil))
	assert.Zero(t, ParseRetryAfter(resp))

	resp.Header.Set(HeaderRetryAfter, "5")
	assert.Equal(t, 5*time.Second, ParseRetryAfter(resp))

	resp.Header.Set(HeaderRetryAfter, "soon")
	assert.Zero(t, ParseRetryAfter(resp))
}

func TestRateLimiter_Wait(t *testing.T) {
	limiter := NewRateLimiter(DefaultRate, DefaultBurst)
	for i := 0; i < DefaultBurst; i++ {
		require.NoError(t, limiter.Wait(context.Background()))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, limiter.Wait(ctx))
}
