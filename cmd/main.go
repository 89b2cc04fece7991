package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/b3stream/config"
	"github.com/guttosm/b3stream/internal/app"
	"github.com/guttosm/b3stream/internal/collector"
	"github.com/guttosm/b3stream/internal/dataset"
	"github.com/guttosm/b3stream/internal/domain/models"
	"github.com/guttosm/b3stream/internal/logger"
	"github.com/guttosm/b3stream/internal/normalize"
	"github.com/guttosm/b3stream/internal/storage"
)

const previewRows = 5

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

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runCollect executes one collection session: stream for the configured
// window, normalize, optionally filter by ticker, then fan out to the CSV
// file and (optionally) Postgres.
//
// An interrupt during the window cancels the session context; whatever was
// accumulated so far is still normalized and exported.
func runCollect(ctx context.Context, duration time.Duration, ticker, out string, persist bool) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := collector.NewSession(config.AppConfig.Stream,
		collector.WithObserver(func(n int, _ models.RawEvent) {
			if n%10 == 0 {
				logger.L().Info().Int("events", n).Msg("collecting")
			}
		}),
	)

	events, err := session.Collect(ctx, duration)
	if err != nil {
		// Connection faults end the run but never discard collected data.
		logger.L().Error().Err(err).Int("events", len(events)).Msg("collection ended with fault")
	}

	rows := normalize.Records(events)
	table := dataset.New(rows)
	if ticker != "" {
		table = table.FilterByTicker(ticker)
		logger.L().Info().Str("ticker", ticker).Int("rows", table.Len()).Msg("ticker filter applied")
	}

	logger.L().Info().
		Int("collected", len(events)).
		Int("normalized", len(rows)).
		Int("exported", table.Len()).
		Msg("collection summary")
	for _, r := range table.Tail(previewRows) {
		logger.L().Debug().
			Str("hora", r.Time).
			Str("ativo", r.Ticker).
			Int64("qtde", r.Quantity).
			Float64("preco", r.Price).
			Msg("preview")
	}

	// Export sinks run in parallel; first failure cancels the siblings.
	g, _ := errgroup.WithContext(context.Background())

	g.Go(func() error {
		if err := table.SaveCSV(out); err != nil {
			return err
		}
		logger.L().Info().Str("file", out).Int("rows", table.Len()).Msg("csv written")
		return nil
	})

	if persist {
		g.Go(func() error {
			db, err := app.InitPostgres(config.AppConfig)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			repo := storage.NewRowsRepository(db)
			if err := repo.InsertRowsBatch(table.Rows()); err != nil {
				return err
			}
			logger.L().Info().Int("rows", table.Len()).Msg("rows persisted")
			return nil
		})
	}

	return g.Wait()
}

// main is the entry point of the b3stream application.
//
// Modes (selected via --mode flag):
//   - collect: Streams the SSE trade feed for a bounded window and exports the result.
//   - api:     Starts the REST API to expose collected trade data.
//
// Flags:
//   - --mode:     Execution mode ("collect" or "api"). Default: "collect".
//   - --duration: Collection window. Defaults to value from config (STREAM_DURATION_SECONDS).
//   - --ticker:   Optional exact-match ticker filter applied before export (e.g. "CBIO").
//   - --out:      Output CSV path. Default: "./data/trades.csv".
//   - --persist:  Also insert the exported rows into Postgres.
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "collect", "Mode: collect or api")
	duration := flag.Duration("duration", config.AppConfig.Stream.Duration, "Collection window (e.g. 90s, 5m)")
	ticker := flag.String("ticker", "", "Exact-match ticker filter (empty = all)")
	out := flag.String("out", "./data/trades.csv", "Output CSV path")
	persist := flag.Bool("persist", false, "Also persist collected rows to Postgres")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "collect":
		logger.L().Info().Dur("duration", *duration).Msg("running collection")
		if err := runCollect(ctx, *duration, *ticker, *out, *persist); err != nil {
			logger.L().Fatal().Err(err).Msg("collection failed")
		}
		logger.L().Info().Msg("collection completed successfully")

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
