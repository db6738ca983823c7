// Package server wires the marketpulse backend: it validates configuration,
// opens and migrates the user database, builds the services and runs the
// HTTP API until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/marketpulse/internal/logging"
	"github.com/dmitrijs2005/marketpulse/internal/server/config"
	"github.com/dmitrijs2005/marketpulse/internal/server/feeds"
	"github.com/dmitrijs2005/marketpulse/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/marketpulse/internal/server/rest"
	"github.com/dmitrijs2005/marketpulse/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *rest.Server
}

// NewApp fails fast on invalid configuration or an unusable database.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, logging.NewLogger(c.LogLevel))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	db, rm, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us, err := services.NewUserService(db, rm, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("user service init error: %w", err)
	}

	if c.NewsAPIKey == "" {
		logger.Warn(ctx, "NewsAPI key is not set, /market-data will fail upstream")
	}
	if c.WeatherAPIKey == "" {
		logger.Warn(ctx, "WeatherAPI key is not set, /weather will fail upstream")
	}

	fc := feeds.NewClient(c)
	srv := rest.NewServer(c, logger, us, fc)
	fc.WithObserver(srv.ObserveUpstream)

	return &App{config: c, logger: logger, db: db, http: srv}, nil
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

// Run blocks until ctx is cancelled or a termination signal arrives, then
// stops the HTTP server and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "database", dsnKind(app.config.DatabaseDSN))

	app.initSignalHandler(cancelFunc)

	err := app.http.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "closing database", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}

func dsnKind(dsn string) string {
	if repomanager.IsPostgresDSN(dsn) {
		return "postgres"
	}
	return "sqlite"
}
