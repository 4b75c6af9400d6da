package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmachaddo/egg-back-home-wms/internal/adapters/driven/storage/memory"
	storefrontconn "github.com/jmachaddo/egg-back-home-wms/internal/connectors/storefront"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

func newTestSourceService(t *testing.T) (*SourceSettingsService, *memory.SourceConfigStore, *memory.ActivityLog) {
	t.Helper()
	store := memory.NewSourceConfigStore()
	activity := memory.NewActivityLog()
	svc := NewSourceSettingsService(store, storefrontconn.NewFactory(), activity)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc, store, activity
}

func TestSourceSettingsService_Connect(t *testing.T) {
	svc, store, activity := newTestSourceService(t)
	ctx := domain.WithActor(context.Background(), "maria")

	cfg, err := svc.Connect(ctx, "  shop.example.com/api/ ", " shpat_123 ")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/api", cfg.BaseURL)
	assert.Equal(t, "shpat_123", cfg.AccessToken)
	assert.True(t, cfg.IsConfigured())

	stored, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, *cfg, *stored)

	entries := activity.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, ActionIntegration, entries[0].Action)
	assert.Equal(t, domain.ModuleIntegrations, entries[0].Module)
	assert.Equal(t, "connected: https://shop.example.com/api", entries[0].Details)
	assert.Equal(t, "maria", entries[0].User)
}

func TestSourceSettingsService_Connect_Validation(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		token   string
		want    string
	}{
		{"missing url", "", "tok", "baseurl is required"},
		{"missing token", "shop.example.com", "  ", "accesstoken is required"},
		{"token with spaces", "shop.example.com", "a b", "accesstoken must not contain whitespace"},
		{"bad url", "http://exa mple.com", "tok", "baseurl is not a valid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, activity := newTestSourceService(t)

			_, err := svc.Connect(context.Background(), tt.baseURL, tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.want)

			_, err = store.Get(context.Background())
			assert.ErrorIs(t, err, domain.ErrNotFound)
			assert.Empty(t, activity.Entries())
		})
	}
}

func TestSourceSettingsService_Disconnect(t *testing.T) {
	svc, store, activity := newTestSourceService(t)
	ctx := context.Background()

	_, err := svc.Connect(ctx, "shop.example.com", "tok")
	require.NoError(t, err)
	require.NoError(t, svc.Disconnect(ctx))

	cfg, err := store.Get(ctx)
	require.NoError(t, err)
	assert.False(t, cfg.Connected)
	assert.Empty(t, cfg.AccessToken)
	assert.Equal(t, "https://shop.example.com", cfg.BaseURL)
	assert.False(t, cfg.IsConfigured())

	entries := activity.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "disconnected: https://shop.example.com", entries[1].Details)
	assert.Equal(t, "Admin", entries[1].User)
}

func TestSourceSettingsService_Disconnect_NeverConfigured(t *testing.T) {
	svc, _, activity := newTestSourceService(t)
	require.NoError(t, svc.Disconnect(context.Background()))
	assert.Empty(t, activity.Entries())
}

func TestSourceSettingsService_Get(t *testing.T) {
	svc, _, _ := newTestSourceService(t)

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Connect(context.Background(), "shop.example.com", "tok")
	require.NoError(t, err)
	cfg, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.Connected)
}

func TestSourceSettingsService_TestConnection(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		svc, _, _ := newTestSourceService(t)
		err := svc.TestConnection(context.Background())
		assert.ErrorIs(t, err, domain.ErrSourceNotConnected)
	})

	t.Run("ok", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
			assert.Equal(t, "tok", r.Header.Get(storefrontconn.HeaderAccessToken))
			_, _ = w.Write([]byte(`{"customers":[]}`))
		}))
		defer server.Close()

		svc, _, _ := newTestSourceService(t)
		_, err := svc.Connect(context.Background(), server.URL, "tok")
		require.NoError(t, err)
		assert.NoError(t, svc.TestConnection(context.Background()))
	})

	t.Run("rejected token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		svc, _, _ := newTestSourceService(t)
		_, err := svc.Connect(context.Background(), server.URL, "tok")
		require.NoError(t, err)

		err = svc.TestConnection(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrAuthRejected)
	})

	t.Run("factory failure", func(t *testing.T) {
		store := memory.NewSourceConfigStore()
		require.NoError(t, store.Save(context.Background(),
			domain.SourceConfig{BaseURL: "https://shop.example.com", AccessToken: "tok", Connected: true}))
		svc := NewSourceSettingsService(store, &fakeFactory{err: domain.ErrInvalidInput}, nil)

		err := svc.TestConnection(context.Background())
		assert.True(t, domain.IsKind(err, domain.KindConfiguration))
	})
}
