/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the educator salary and pension calculator server.
  Handles configuration, table loading, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load YAML configuration and build the zap logger
  3. Load both salary scale editions (JSON files or SQLite)
  4. Create API handler with dependencies
  5. Start server with graceful shutdown

  A missing or malformed salary scale is fatal: the server never starts
  without both editions.

COMMAND-LINE FLAGS:
  -config     YAML config file (default: config.yaml, optional)
  -port       HTTP server port, overrides the configured address
  -db         SQLite database with imported scales, overrides tables.database
  -log-level  debug, info, warn or error, overrides logging.level

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with the bundled JSON scales
  ./server

  # Run against scales imported with scalectl
  ./server -db="./data/scales.db"

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Configuration file format
  - cmd/scalectl: Scale import and inspection
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/StephenDWright/TeacherApps1/api"
	"github.com/StephenDWright/TeacherApps1/config"
	"github.com/StephenDWright/TeacherApps1/pension"
	"github.com/StephenDWright/TeacherApps1/scale"
	"github.com/StephenDWright/TeacherApps1/store/sqlite"
)

func main() {
	// Flags
	configPath := flag.String("config", "config.yaml", "YAML configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config address)")
	dbPath := flag.String("db", "", "SQLite database with imported scales (overrides config)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Address = fmt.Sprintf(":%d", *port)
	}
	if *dbPath != "" {
		cfg.Tables.Database = *dbPath
	}

	logger, err := config.NewLogger(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load salary scales
	ctx := context.Background()
	tables, closeSource, err := loadTables(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to load salary scales", zap.String("op", "load_tables"), zap.Error(err))
	}
	defer closeSource()

	// Initialize handler
	handler := api.NewHandler(tables, pension.NewCalculator(nil), logger)

	// Create router
	router := api.NewRouter(handler, cfg.CORS.AllowedOrigins)

	// Create server
	server := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("address", cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}

// loadTables reads both editions from SQLite when a database is configured,
// otherwise from the JSON files. Edition display text comes from config,
// overlaid with whatever the database recorded at import time.
func loadTables(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*scale.Tables, func(), error) {
	info := cfg.EditionInfo()

	if cfg.Tables.Database == "" {
		src := scale.FileSource{CurrentPath: cfg.Tables.Current, PreviousPath: cfg.Tables.Previous}
		tables, err := scale.LoadTables(ctx, src)
		if err != nil {
			return nil, nil, err
		}
		tables.Info = info
		logger.Info("Loaded salary scales",
			zap.String("op", "load_tables"),
			zap.String("current", cfg.Tables.Current),
			zap.String("previous", cfg.Tables.Previous),
		)
		return tables, func() {}, nil
	}

	store, err := sqlite.New(cfg.Tables.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open scale database: %w", err)
	}
	tables, err := scale.LoadTables(ctx, store)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	stored, err := store.Info(ctx)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	for e, si := range stored {
		if si.Name != "" {
			info[e] = si
		}
	}
	tables.Info = info

	logger.Info("Loaded salary scales",
		zap.String("op", "load_tables"),
		zap.String("database", cfg.Tables.Database),
	)
	return tables, func() { store.Close() }, nil
}
