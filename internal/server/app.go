// Package server wires the clinic backend together: it opens the database,
// applies migrations, seeds the first administrator and runs the HTTP API
// alongside the gRPC health endpoint until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/clinic/internal/dbx"
	"github.com/dmitrijs2005/clinic/internal/logging"
	"github.com/dmitrijs2005/clinic/internal/server/auth"
	"github.com/dmitrijs2005/clinic/internal/server/config"
	"github.com/dmitrijs2005/clinic/internal/server/httpapi"
	"github.com/dmitrijs2005/clinic/internal/server/models"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/content"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/clinic/internal/server/services"

	gs "github.com/dmitrijs2005/clinic/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	deps   httpapi.Deps
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	tokens := auth.NewTokenService([]byte(c.SecretKey), c.TokenValidityDuration)
	admins := services.NewAdminService(db, rm, tokens)

	seeded, err := admins.EnsureSeedAdmin(ctx, c.AdminUsername, c.AdminPassword)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	if seeded {
		logger.Info(ctx, "seed admin created", "username", c.AdminUsername)
	}

	posts := services.NewCatalog(db, "post", func(tx dbx.DBTX) content.Repository[models.BlogPost, models.BlogPostPatch] {
		return rm.Posts(tx)
	})

	deps := httpapi.Deps{
		Config:       c,
		Logger:       logger,
		Tokens:       tokens,
		Admins:       admins,
		Comments:     services.NewCommentService(db, rm),
		Doctors:      services.NewCatalog(db, "doctor", rm.Doctors),
		Services:     services.NewCatalog(db, "service", rm.Services),
		Posts:        posts,
		Appointments: services.NewCatalog(db, "appointment", rm.Appointments),
		Media:        services.NewMediaService(c),
		DB:           db,
	}

	return &App{config: c, logger: logger, db: db, deps: deps}, nil
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
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, httpapi.NewRouter(app.deps))
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.db, gs.DefaultCheckInterval)
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

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
