// Package server wires the soulbloom server together: database and
// migrations, services, the gRPC transport, the metrics endpoint and tracing,
// and runs them until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/soulbloom/internal/logging"
	"github.com/dmitrijs2005/soulbloom/internal/observability"
	"github.com/dmitrijs2005/soulbloom/internal/server/auth"
	"github.com/dmitrijs2005/soulbloom/internal/server/config"
	"github.com/dmitrijs2005/soulbloom/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/soulbloom/internal/server/services"
	"github.com/dmitrijs2005/soulbloom/internal/tracing"

	gs "github.com/dmitrijs2005/soulbloom/internal/server/grpc"
)

const limiterSweepInterval = time.Minute

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	limiter *services.LoginLimiter
	grpc    *gs.GRPCServer
	obs     *observability.Server

	shutdownTracing tracing.ShutdownFunc
}

// NewApp connects to the database, applies migrations and builds every
// component. Resources acquired before a failure are released.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	if err != nil {
		return nil, err
	}

	shutdownTracing, err := tracing.Init(ctx, logger, c.ServiceName, c.Environment)
	if err != nil {
		return nil, fmt.Errorf("tracing init error: %w", err)
	}

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		_ = shutdownTracing(ctx)
		return nil, err
	}

	tokens := auth.NewTokenService([]byte(c.SecretKey), c.TokenTTL)
	limiter := services.NewLoginLimiter(c.LoginRate, c.LoginBurst)

	obs := observability.NewServer(c.MetricsAddr, logger, db.PingContext)

	grpcServer := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, gs.Services{
		Auth:     services.NewAuthenticator(db, rm, auth.NewBcryptHasher(c.BcryptCost), tokens, limiter, logger),
		Identity: services.NewIdentityResolver(db, rm, tokens, logger),
		Users:    services.NewUserService(db, rm, logger),
		Gardens:  services.NewGardenService(db, rm, c.WaterOnCreate, logger),
	}, obs.Metrics())

	return &App{
		config:          c,
		logger:          logger,
		db:              db,
		limiter:         limiter,
		grpc:            grpcServer,
		obs:             obs,
		shutdownTracing: shutdownTracing,
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run blocks until ctx is cancelled, a signal arrives or a server fails.
// It returns the first server error, if any.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	run := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				app.logger.Error(ctx, "component failed", "component", name, "error", err)
				errOnce.Do(func() { firstErr = fmt.Errorf("%s: %w", name, err) })
				cancelFunc()
			}
		}()
	}

	run("grpc", app.grpc.Run)
	run("observability", app.obs.Run)
	run("login limiter", func(ctx context.Context) error {
		app.limiter.Run(ctx, limiterSweepInterval)
		return nil
	})

	wg.Wait()

	return errors.Join(firstErr, app.close())
}

func (app *App) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error
	if err := app.shutdownTracing(ctx); err != nil {
		errs = append(errs, fmt.Errorf("tracing shutdown: %w", err))
	}
	if err := app.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("db close: %w", err))
	}

	app.logger.Info(ctx, "App stopped")
	return errors.Join(errs...)
}
