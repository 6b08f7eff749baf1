package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/salinity-watch/internal/infra/config"
	"github.com/yanqian/salinity-watch/internal/infra/simulator"
)

const shutdownTimeout = 10 * time.Second

// App encapsulates the HTTP server and simulator lifecycle.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	server    *http.Server
	simulator *simulator.Scheduler
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, sim *simulator.Scheduler) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, simulator: sim}
}

// Run starts the simulator and the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	if err := a.simulator.Start(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
		return a.shutdown()
	case err := <-errCh:
		_ = a.shutdown()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	simErr := a.simulator.Stop(shutdownCtx)
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return simErr
}
