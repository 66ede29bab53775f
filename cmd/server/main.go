package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/policynav/policynav/internal/config"
	"github.com/policynav/policynav/internal/courtlistener"
	"github.com/policynav/policynav/internal/dataset"
	"github.com/policynav/policynav/internal/domain/alert"
	"github.com/policynav/policynav/internal/domain/compliance"
	"github.com/policynav/policynav/internal/domain/document"
	"github.com/policynav/policynav/internal/domain/policy"
	"github.com/policynav/policynav/internal/federalregister"
	"github.com/policynav/policynav/internal/mcp"
	"github.com/policynav/policynav/internal/metrics"
	"github.com/policynav/policynav/internal/navigator"
	"github.com/policynav/policynav/internal/sqlite"
	"github.com/policynav/policynav/internal/transport"
	"github.com/policynav/policynav/internal/webpage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	m := metrics.New(promRegistry)

	registry := federalregister.NewClient(cfg.Registry.BaseURL, cfg.Registry.Timeout, logger)
	registry.SetFailureCounter(m.AdapterFailuresTotal.WithLabelValues("federal_register"))
	courts := courtlistener.NewClient(cfg.CourtAPI.BaseURL, cfg.CourtAPI.APIKey, cfg.CourtAPI.Timeout, logger)
	courts.SetFailureCounter(m.AdapterFailuresTotal.WithLabelValues("courtlistener"))

	fetcher := webpage.NewFetcher(cfg.Ingest.FetchTimeout)
	store := document.NewStore(fetcher, logger)

	rules, err := sqlite.NewRulesRepository(db).Load(context.Background())
	if err != nil {
		logger.Warn("compliance rule overrides unavailable, using built-in table", "error", err)
		rules = nil
	}

	policySvc := policy.NewService(registry, courts, logger)
	analyzer := compliance.NewAnalyzerWithRules(rules)
	alerts := alert.NewService(cfg.Alerts.SlackWebhookURL, cfg.Alerts.NotionToken, logger)
	loader := dataset.NewLoader(store, logger)

	nav := navigator.New(store, policySvc, analyzer, alerts, loader, logger)
	nav.LoadInitialData(context.Background())

	mcpServer := mcp.NewServer(mcp.Config{
		Navigator: nav,
		Logger:    logger,
	})

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, mcpServer)
		return
	}
	runHTTPMode(logger, mcpServer, nav, m, promRegistry, cfg.Server.Host, cfg.Server.Port)
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	transportIO := &sdkmcp.StdioTransport{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or the context is canceled.
	if err := mcpServer.Run(ctx, transportIO); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, mcpServer *sdkmcp.Server, nav *navigator.Navigator, m *metrics.Metrics, gatherer prometheus.Gatherer, host string, port int) {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := transport.NewRouter(nav, m, gatherer, logger)
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/*", mcpHandler)

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
