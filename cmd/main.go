package main

//
//  @title           cryptorec API
//  @version         1.0
//  @description     Crypto price ingestion and normalized range recommendation service.
//  @termsOfService  https://github.com/guttosm/cryptorec
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/cryptorec
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @securityDefinitions.basic  BasicAuth
//
//  @tag.name        cryptos
//  @tag.description Normalized range rankings and per-crypto stats
//
//  @tag.name        admin
//  @tag.description Reload or clear stored prices
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/cryptorec/config"
	_ "github.com/guttosm/cryptorec/docs" // swagger docs
	"github.com/guttosm/cryptorec/internal/app"
	"github.com/guttosm/cryptorec/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown blocks until SIGINT or SIGTERM, then drains the HTTP
// server and runs cleanup (closing the store).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the cryptorec application.
//
// Modes (selected via --mode flag):
//   - api:    Loads the CSV directory into the configured store and serves the REST API.
//   - ingest: Loads the CSV directory into Postgres and exits (STORE_DRIVER=postgres).
//
// Flags:
//   - --mode:  Execution mode ("api" or "ingest"). Default: "api".
//   - --dir:   Directory containing .csv price files. Defaults to CSV_DIR.
//   - --port:  Port for the API server. Defaults to SERVER_PORT.
//   - --reset: In ingest mode, truncate stored prices before loading.
func main() {
	ctx := context.Background()

	config.LoadConfig()
	logger.Init()

	mode := flag.String("mode", "api", "Mode: api or ingest")
	dir := flag.String("dir", config.AppConfig.Ingest.Dir, "Directory with .csv price files")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	reset := flag.Bool("reset", false, "Ingest mode: delete stored prices before loading")
	flag.Parse()

	switch *mode {
	case "ingest":
		logger.L().Info().Str("dir", *dir).Bool("reset", *reset).Msg("running ingestion")

		rep, err := app.RunIngest(ctx, config.AppConfig, *dir, *reset)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		logger.L().Info().
			Int("files", rep.Files).
			Int("loaded", rep.Loaded).
			Int("skipped", rep.Skipped).
			Msg("ingestion completed successfully")

	case "api":
		logger.L().Info().Msg("starting API server")

		config.AppConfig.Ingest.Dir = *dir
		router, cleanup, err := app.InitializeApp(ctx)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
