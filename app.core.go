package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AppProvider interface {
	Run() error
	Serve() func() error
	Stop(context.Context, context.Context) func() error
}

type App struct {
	logger   *zap.Logger
	config   *Config
	server   *http.Server
	cleanups []func()
}

// NewApp loads the configuration then builds the logger, the storage and
// the http server. Resources acquired before a failure are released.
func NewApp() (AppProvider, error) {
	config, err := LoadAndInitConfigs(GitCommit, GitTag, BuildTime)
	if err != nil {
		return nil, fmt.Errorf("failed to setup app configuration: %s", err)
	}

	app := &App{config: config}
	clock := NewClock(config.IsProduction)
	app.logger = app.setupLogger(clock)

	storage, storageCloser, err := SetupStorage(app.logger, &config.Storage)
	if err != nil {
		app.Clean()
		return nil, fmt.Errorf("failed to setup storage: %s", err)
	}
	app.cleanups = append([]func(){storageCloser}, app.cleanups...)

	// Reading once at boot creates a missing data file and rejects a corrupted one.
	if _, err = storage.Load(context.Background()); err != nil {
		app.Clean()
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}
	app.logger.Info("storage ready",
		zap.String("storage.driver", config.Storage.Driver),
		zap.String("storage.file", config.Storage.DataFile),
	)

	app.server = &http.Server{
		Addr:           fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
		Handler:        app.setupHandler(storage, clock),
		ReadTimeout:    config.Server.ReadTimeout,
		WriteTimeout:   config.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
	return app, nil
}

// setupLogger builds the rotating file logger and registers its flush and close.
func (app *App) setupLogger(clock *Clock) *zap.Logger {
	logWriter := NewRSyncWriter(app.config, clock)
	logger, flusher := SetupLogging(app.config, logWriter, NewTickClock(clock))
	app.cleanups = append(app.cleanups, func() {
		if err := flusher(); err != nil {
			fmt.Println("error during flushing of logs: ", err)
		}
		if err := logWriter.Close(); err != nil {
			fmt.Println("error during closing of log file: ", err)
		}
	})
	return logger
}

// setupHandler wires the services, the middlewares chains and the routes.
func (app *App) setupHandler(storage Storage, clock *Clock) http.Handler {
	// Both services share one lock since they share one dataset.
	mu := &sync.RWMutex{}
	stats := &Statistics{
		version:   app.config.GitTag,
		container: IsAppRunningInDocker(),
		started:   clock.Now(),
		runtime:   runtime.Version(),
		platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if stats.version == "" {
		stats.version = app.config.GitCommit
	}

	api := NewAPIHandler(
		app.logger,
		app.config,
		stats,
		clock,
		NewIDsHandler(),
		NewBookService(app.logger, storage, mu),
		NewUserService(app.logger, storage, mu),
	)

	public, admin := api.MiddlewaresStacks()
	router := api.SetupRoutes(httprouter.New(), &MiddlewareMap{public: public.Chain, admin: admin.Chain})
	return api.Handler(router)
}

// Run serves until an interrupt or a serving failure, then shuts down.
func (app *App) Run() error {
	defer app.Clean()
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(sigCtx)
	g.Go(app.Serve())
	g.Go(app.Stop(sigCtx, gCtx))

	err := g.Wait()
	app.logger.Info("api server stopped", zap.String("server.addr", app.server.Addr), zap.Error(err))
	return err
}

// Clean releases resources in registration order.
func (app *App) Clean() {
	for _, f := range app.cleanups {
		f()
	}
}

// Serve returns the errgroup routine listening for requests.
func (app *App) Serve() func() error {
	return func() error {
		app.logger.Info("api server starting", zap.String("server.addr", app.server.Addr))
		if err := app.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Stop returns the errgroup routine waiting for the group to end before shutting the
// server down. It falls back to closing every connection when the graceful shutdown
// fails and always returns nil so the group reports the serving error only.
func (app *App) Stop(sigCtx, gCtx context.Context) func() error {
	return func() error {
		<-gCtx.Done()
		reason := "serving failed"
		if sigCtx.Err() != nil {
			reason = "signal received"
		}
		app.logger.Info("api server stopping", zap.String("reason", reason))

		ctx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
		defer cancel()
		err := app.server.Shutdown(ctx)
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			app.logger.Info("api server graceful shutdown succeeded")
			return nil
		}
		app.logger.Warn("api server graceful shutdown failed", zap.Error(err))
		app.logger.Info("api server going to force shutdown", zap.Error(app.server.Close()))
		return nil
	}
}
