package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/go-chi/chi/v5"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Run starts the event bus, background workers and HTTP servers, then blocks
// until ctx is cancelled or a server fails. It shuts everything down before
// returning.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	busErr := make(chan error, 1)
	go func() {
		busErr <- a.Bus.Run(ctx)
	}()
	select {
	case <-a.Bus.Running():
	case err := <-busErr:
		return fmt.Errorf("event bus failed to start: %w", err)
	case <-ctx.Done():
		return a.Close()
	}

	a.wg.Add(1)
	go a.Modules.Game.Run(ctx, &a.wg)

	serverErr := make(chan error, 2)
	a.serve(serverErr, &http.Server{
		Addr:              a.Config.HTTP.Address,
		Handler:           a.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}, "api")

	if addr := a.Config.Observability.MetricsAddress; addr != "" {
		mux := chi.NewRouter()
		mux.Handle("/metrics", a.Metrics.Handler())
		a.serve(serverErr, &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
		}, "metrics")
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown requested")
	case err := <-serverErr:
		runErr = err
	case err := <-busErr:
		if err != nil {
			runErr = fmt.Errorf("event bus stopped: %w", err)
		}
	}

	cancel()
	return errors.Join(runErr, a.Close())
}

func (a *App) serve(errs chan<- error, srv *http.Server, name string) {
	a.servers = append(a.servers, srv)
	go func() {
		a.Logger.Info("HTTP server listening", attr.String("server", name), attr.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("%s server: %w", name, err)
		}
	}()
}
