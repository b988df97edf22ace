package commands

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hugh/orgroster/internal/database"
	"github.com/hugh/orgroster/pkg/config"
	"github.com/hugh/orgroster/pkg/util"
	"gorm.io/gorm"
)

type Globals struct {
	Version string
}

// runtime is what every command needs before doing its own work.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *gorm.DB
}

// bootstrap loads configuration, builds the logger and connects to the
// database. It fails fast on invalid configuration.
func bootstrap() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := util.NewLogger(cfg.Server.Env, cfg.Log.Level)
	slog.SetDefault(logger)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	return &runtime{cfg: cfg, logger: logger, db: db}, nil
}

func (rt *runtime) close() {
	if err := database.Close(rt.db); err != nil {
		rt.logger.Error("closing database", "error", err)
	}
}

func configureHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    8 * 1024,
	}
}
