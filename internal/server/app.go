// Package server initializes and runs the main application server.
// It opens the database, applies migrations, wires the services together,
// and starts the HTTP server with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tanvirrahman/matrimony/internal/logging"
	"github.com/tanvirrahman/matrimony/internal/server/config"
	"github.com/tanvirrahman/matrimony/internal/server/httpapi"
	"github.com/tanvirrahman/matrimony/internal/server/payments"
	"github.com/tanvirrahman/matrimony/internal/server/repositories/repomanager"
	"github.com/tanvirrahman/matrimony/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	accountService := services.NewAccountService(db, rm, c)
	profileService := services.NewProfileService(db, rm, c)
	unlockService := services.NewUnlockService(db, rm, c, payments.NewStripeIntentCreator(c.StripeSecretKey))
	reportService := services.NewReportService(db, rm, c)
	favoriteService := services.NewFavoriteService(db, rm, c)
	storyService := services.NewStoryService(db, rm, c)
	photoService := services.NewPhotoService(c)

	server := httpapi.NewServer(c, logger,
		accountService, profileService, unlockService, reportService,
		favoriteService, storyService, photoService)

	return &App{config: c, logger: logger, db: db, server: server}, nil
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
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
