package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hugh/orgroster/internal/api"
	"github.com/hugh/orgroster/internal/api/validation"
	"github.com/hugh/orgroster/internal/auth"
	"github.com/hugh/orgroster/internal/database"
	"github.com/hugh/orgroster/internal/store"
)

type ServeCmd struct {
	Migrate         bool          `help:"Apply pending migrations before serving." default:"false" env:"AUTO_MIGRATE"`
	ShutdownTimeout time.Duration `help:"How long to wait for in-flight requests on shutdown." default:"30s" env:"SHUTDOWN_TIMEOUT"`
}

func (c *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	cfg, logger := rt.cfg, rt.logger
	logger.Info("starting orgroster server",
		"version", globals.Version,
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
	)

	if c.Migrate {
		if err := database.Migrate(ctx, rt.db, logger); err != nil {
			return err
		}
	}

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry(), cfg.JWT.Issuer)
	authService := auth.NewService(rt.db, jwtService, auth.ServiceConfig{
		BcryptCost:     cfg.Auth.BcryptCost,
		UniqueOrgNames: cfg.Tenancy.UniqueOrgNames,
	}, logger)

	employees := store.NewEmployeeStore(rt.db, logger)
	teams := store.NewTeamStore(rt.db, logger)
	assignments := store.NewAssignmentStore(rt.db, employees, teams, logger)

	router := api.NewRouter(api.RouterConfig{
		DB:             rt.db,
		Logger:         logger,
		AuthService:    authService,
		Employees:      employees,
		Teams:          teams,
		Assignments:    assignments,
		Validator:      validation.New(cfg.Phone.DefaultRegion),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	server := configureHTTPServer(cfg.Server.Addr(), router)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}
