package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driving"
	"github.com/jmachaddo/egg-back-home-wms/internal/logger"
	"github.com/jmachaddo/egg-back-home-wms/internal/metrics"
)

// MaxRequestBytes bounds request bodies.
const MaxRequestBytes = 1 << 20

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 10 * time.Second

// Services are the core services the API drives.
type Services struct {
	Customers driving.CustomerService
	Sync      driving.SyncOrchestrator
	Scheduler driving.Scheduler
	Source    driving.SourceSettingsService
	Activity  driving.ActivityLogService
}

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
}

// NewRouter builds the route tree. An empty apiKey disables the key check.
func NewRouter(svc Services, apiKey string) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestSizeLimitMiddleware(MaxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)
	r.Use(APIKeyMiddleware(apiKey))
	r.Use(ActorMiddleware)

	r.Get("/healthz", handleHealthz())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", handleListCustomers(svc.Customers))
			r.Get("/{code}", handleGetCustomer(svc.Customers))
		})

		r.Route("/sync", func(r chi.Router) {
			r.Post("/", handleTriggerSync(svc.Scheduler))
			r.Get("/status", handleSyncStatus(svc.Sync))
			r.Get("/history", handleSyncHistory(svc.Scheduler))
		})

		r.Get("/logs", handleListLogs(svc.Activity))

		r.Route("/settings/source", func(r chi.Router) {
			r.Get("/", handleGetSource(svc.Source))
			r.Put("/", handleConnectSource(svc.Source))
			r.Delete("/", handleDisconnectSource(svc.Source))
			r.Post("/test", handleTestSource(svc.Source))
		})
	})

	return r
}

// NewServer creates a server listening on addr.
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start starts the server. It blocks until the server stops.
func (s *Server) Start() error {
	logger.Info("http: listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := s.Stop(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
