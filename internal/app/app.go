package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cryptorec/config"
	"github.com/guttosm/cryptorec/internal/api"
	"github.com/guttosm/cryptorec/internal/ingestion"
	"github.com/guttosm/cryptorec/internal/logger"
	"github.com/guttosm/cryptorec/internal/service"
	"github.com/guttosm/cryptorec/internal/storage"
)

// backend is the store selected by STORE_DRIVER plus what the health
// probe and shutdown need from it.
type backend struct {
	store   storage.PriceStore
	ping    func() error
	cleanup func()
}

// openStore builds the PriceStore for cfg.StoreDriver. For postgres it
// connects and applies migrations first.
func openStore(cfg config.Config) (*backend, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		// indirection for unit testing
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		if err := migrator(db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate postgres: %w", err)
		}
		return &backend{
			store:   storage.NewPostgresStore(db),
			ping:    db.Ping,
			cleanup: func() { _ = db.Close() },
		}, nil
	case config.DriverMemory, "":
		return &backend{store: storage.NewMemoryStore(), cleanup: func() {}}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func ingestOptions(cfg config.Config) ingestion.Options {
	return ingestion.Options{BatchSize: cfg.Ingest.BatchSize, Parallel: cfg.Ingest.Parallel}
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Opens the configured PriceStore (memory, or postgres with migrations).
//   - Loads the CSV directory before returning, so the router is only
//     served once prices are in place. A persistent store that already
//     holds rows is not loaded again.
//   - Creates the service, handler and router layers.
//   - Registers health and readiness probes.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp(ctx context.Context) (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	be, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	reloader := ingestion.NewReloader(be.store, cfg.Ingest.Dir, ingestOptions(cfg))
	if _, err := reloader.LoadIfEmpty(ctx); err != nil {
		be.cleanup()
		return nil, nil, fmt.Errorf("initial ingestion: %w", err)
	}

	svc := service.NewRecommendationService(be.store)
	var admin api.Maintainer
	if cfg.Admin.Enabled() {
		admin = reloader
	} else {
		logger.L().Warn().Msg("ADMIN_USER/ADMIN_PASSWORD not set, /admin routes disabled")
	}
	handler := api.NewHandler(svc, admin)

	router := api.NewRouter(handler, api.RouterConfig{
		RateLimitRequests: cfg.RateLimit.Requests,
		RateLimitWindow:   cfg.RateLimit.Window,
		RequestTimeout:    cfg.Server.RequestTimeout,
		AdminUser:         cfg.Admin.User,
		AdminPassword:     cfg.Admin.Password,
	})

	api.NewHealthHandler(reloader.Ready, be.ping).Register(router)

	logger.L().Info().Str("driver", cfg.StoreDriver).Str("dir", cfg.Ingest.Dir).Msg("application initialized")
	return router, be.cleanup, nil
}

// RunIngest loads dir into the postgres store, used by the ingest mode.
// With reset the table is truncated first; otherwise rows are appended.
func RunIngest(ctx context.Context, cfg config.Config, dir string, reset bool) (*ingestion.Report, error) {
	if cfg.StoreDriver != config.DriverPostgres {
		return nil, fmt.Errorf("ingest mode requires STORE_DRIVER=%s, got %q", config.DriverPostgres, cfg.StoreDriver)
	}
	be, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	defer be.cleanup()

	reloader := ingestion.NewReloader(be.store, dir, ingestOptions(cfg))
	if reset {
		return reloader.Reload(ctx)
	}
	return reloader.Load(ctx)
}
