// Package server wires the guestbook application together: storage
// gateway, request handlers, worker pool and shutdown coordinator.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/guestbook/internal/common"
	"github.com/dmitrijs2005/guestbook/internal/logging"
	"github.com/dmitrijs2005/guestbook/internal/netx"
	"github.com/dmitrijs2005/guestbook/internal/server/config"
	"github.com/dmitrijs2005/guestbook/internal/server/guestbook"
	"github.com/dmitrijs2005/guestbook/internal/server/httpserver"
	"github.com/dmitrijs2005/guestbook/internal/server/lifecycle"
	"github.com/dmitrijs2005/guestbook/internal/server/static"
	"github.com/dmitrijs2005/guestbook/internal/server/storage"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	store       *storage.Gateway
	server      *httpserver.Server
	coordinator *lifecycle.Coordinator
}

// NewApp opens the store, creates the schema and builds the HTTP side.
// Any error here is fatal to startup.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	store, err := storage.Open(ctx, c.DatabaseDSN, storage.Options{VisitorCounter: c.VisitorCounter}, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := store.InitializeSchema(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("db schema error: %w", err)
	}

	coordinator := lifecycle.New(c.ShutdownPollInterval, c.ShutdownPolls, logger)
	es := guestbook.NewService(store, nil)
	h := httpserver.NewHandlers(es, store, static.NewDir(c.StaticDir), c.CORSOrigin, logger)
	srv := httpserver.NewServer(c.Workers, h, coordinator, logger)

	return &App{
		config:      c,
		logger:      logger,
		store:       store,
		server:      srv,
		coordinator: coordinator,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		sig := <-sigs
		app.logger.Info(context.Background(), "signal received", "signal", sig.String())
		cancelFunc()
	}()
}

// Run binds the configured address and serves until SIGINT, SIGTERM or
// SIGQUIT, or until ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	l, err := netx.Listen(ctx, app.config.EndpointAddrHTTP)
	if err != nil {
		_ = app.store.Close()
		return err
	}

	return app.RunListener(ctx, l)
}

// RunListener serves on l until ctx is done, then shuts down. It returns
// common.ErrShutdownTimeout when workers failed to stop in time; the store
// is left open in that case since a stuck worker may still hold it.
func (app *App) RunListener(ctx context.Context, l net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.server.Serve(gctx, l)
	})

	var waitErr error
	g.Go(func() error {
		waitErr = app.coordinator.Run(gctx, app.server.Pool(),
			app.server.Unblock,
			func() { app.server.StopAccepting(app.config.ShutdownTimeout()) },
		)
		return waitErr
	})

	err := g.Wait()
	bg := context.WithoutCancel(ctx)

	if errors.Is(waitErr, common.ErrShutdownTimeout) {
		app.logger.Error(bg, "workers did not stop in time")
		return common.ErrShutdownTimeout
	}

	if cerr := app.store.Close(); cerr != nil {
		app.logger.Error(bg, "db close error", "error", cerr)
	}
	app.logger.Info(bg, "Server stopped")
	return err
}
