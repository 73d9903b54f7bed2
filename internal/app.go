// Package internal assembles the HTTP server of the profile statistics service.
package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/naka-gawa/github-profile-stats/internal/controllers"
	"github.com/naka-gawa/github-profile-stats/internal/providers"
	"github.com/naka-gawa/github-profile-stats/internal/store"
	"github.com/naka-gawa/github-profile-stats/internal/structures"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	WebServer *http.Server
	conf      *structures.Config
	logger    providers.Logger
	store     store.SnapshotStore
}

func NewApp(
	healthController *controllers.HealthController,
	conf *structures.Config,
	logger providers.Logger,
	router providers.RouterProviderInterface,
	metrics providers.MetricsProviderInterface,
	snapshotStore store.SnapshotStore,
) *App {
	// Inner mux: API routes, instrumented and compressed
	instrumentedAPI := gzhttp.GzipHandler(providers.MetricsMiddleware(metrics, router.Mux()))

	// Outer mux: infrastructure + API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	return &App{
		WebServer: &http.Server{
			Addr:              net.JoinHostPort(conf.WebServer.Host, strconv.Itoa(conf.WebServer.Port)),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			// Analyses page through upstream listings and can take a while.
			WriteTimeout: 2 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
		conf:   conf,
		logger: logger,
		store:  snapshotStore,
	}
}

// Run serves until ctx is cancelled or the listener fails, then shuts down gracefully
// and releases the store and log files.
func (a *App) Run(ctx context.Context) error {
	defer a.logger.Close()
	defer func() {
		if err := a.store.Close(); err != nil {
			a.logger.Errorf(providers.TypeStore, "Failed to close store: %v", err)
		}
	}()

	a.logger.Infof(providers.TypeApp, "Starting %s", a.conf.AppName)

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", a.WebServer.Addr)
		if err := a.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.WebServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}
