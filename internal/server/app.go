// Package server initializes and runs the hub server.
// It selects a storage backend, loads the mode registry, handles graceful
// shutdown, and starts the HTTP server for the /i18n API.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/cynit/hub/internal/logging"
	"github.com/cynit/hub/internal/modes"
	"github.com/cynit/hub/internal/server/api"
	"github.com/cynit/hub/internal/server/config"
	"github.com/cynit/hub/internal/server/httpserver"
	"github.com/cynit/hub/internal/server/storage"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	store   storage.Store
	closeFn func() error
	handler *api.Handler
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewDefault()

	registry := modes.DefaultRegistry()
	if c.ModesFile != "" {
		var err error
		registry, err = modes.LoadRegistry(c.ModesFile)
		if err != nil {
			return nil, fmt.Errorf("modes init error: %w", err)
		}
	}

	var store storage.Store
	closeFn := func() error { return nil }

	if c.DatabaseDSN != "" {
		pg, err := storage.OpenPostgres(context.Background(), c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		store = pg
		closeFn = pg.Close
	} else {
		fs, err := storage.NewFileStore(c.DataDir)
		if err != nil {
			return nil, fmt.Errorf("file store init error: %w", err)
		}
		store = fs
	}

	handler := api.NewHandler(store, registry, c.ExportPrefix, logger)

	return &App{config: c, logger: logger, store: store, closeFn: closeFn, handler: handler}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpserver.NewServer(app.config.EndpointAddr, app.handler, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.closeFn(); err != nil {
		app.logger.Error(ctx, "closing store", "error", err)
	}
}
