package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contentsage/contentsage-api/internal/config"
	"github.com/contentsage/contentsage-api/internal/database"
	"github.com/contentsage/contentsage-api/internal/database/bunstore"
	"github.com/contentsage/contentsage-api/internal/infrastructure/llm"
	httpserver "github.com/contentsage/contentsage-api/internal/interface/http"
	"github.com/contentsage/contentsage-api/internal/orchestrator"
	"github.com/contentsage/contentsage-api/internal/registry"
	"github.com/contentsage/contentsage-api/internal/template"
	"github.com/contentsage/contentsage-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// App is the wired core: the orchestrator and, when enabled, the history store.
type App struct {
	Orchestrator *orchestrator.Orchestrator
	Store        *bunstore.BunStore
}

// Bootstrap builds the orchestrator and opens the history database. A nil
// Store means history is disabled.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.Component(ctx, "server")
	app := &App{}

	if cfg.HistoryEnabled {
		store, err := bunstore.OpenSQLite(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		app.Store = store
		log.Info("history store opened", "path", cfg.DatabasePath)
	}

	hc := &http.Client{
		Timeout:   cfg.BackendTimeout() + 5*time.Second,
		Transport: &llm.LoggingTransport{Debug: strings.EqualFold(cfg.LogLevel, "debug")},
	}
	factory := llm.NewFactory(cfg, hc)
	orch, err := orchestrator.New(ctx, registry.Default(), factory, orchestrator.FromConfig(cfg)...)
	if err != nil {
		if app.Store != nil {
			_ = app.Store.Close()
		}
		return nil, err
	}
	app.Orchestrator = orch
	return app, nil
}

// History returns the store as a repository, or nil when history is disabled.
func (a *App) History() database.HistoryRepository {
	if a.Store == nil {
		return nil
	}
	return a.Store
}

// Close releases backends first, then the database.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Orchestrator != nil {
		errs = append(errs, a.Orchestrator.Close(ctx))
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	return errors.Join(errs...)
}

type Server struct {
	cfg        *config.Config
	httpServer *http.Server
}

func New(cfg *config.Config) *Server {
	return &Server{
		cfg: cfg,
	}
}

// Run serves the API until SIGINT or SIGTERM, then drains connections and
// releases every backend.
func (s *Server) Run() error {
	ctx := context.Background()
	log := logger.Component(ctx, "server")

	if !strings.EqualFold(s.cfg.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := Bootstrap(ctx, s.cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Close(closeCtx); err != nil {
			logger.Error(ctx, "failed to release resources", err)
		}
	}()

	apiServer := httpserver.NewServer(app.Orchestrator, app.History(), template.Default(), s.cfg.CORSOrigins)
	s.httpServer = &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           apiServer.RegisterRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(stop)

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting REST API server", "addr", s.cfg.HTTPAddr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-stop:
		log.Info("shutdown signal received, draining connections")
	case err, ok := <-serveErr:
		if ok {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "http shutdown error", err)
	}

	log.Info("server stopped gracefully")
	return nil
}
