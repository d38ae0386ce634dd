package main

//	@title			StreamVault Storefront API
//	@version		0.1.0
//	@description	Catalog composition and theming service for the StreamVault storefront.
//	@BasePath		/api/v1

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/streamvault/storefront/internal/branding"
	"github.com/streamvault/storefront/internal/catalog"
	"github.com/streamvault/storefront/internal/config"
	"github.com/streamvault/storefront/internal/server"
	"github.com/streamvault/storefront/internal/store"
	"github.com/streamvault/storefront/internal/upstream"
	"github.com/streamvault/storefront/internal/version"
	"github.com/streamvault/storefront/internal/ws"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Load configuration (before logger, so log level/format can be configured).
	viperCfg, err := server.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger from configuration.
	logger, err := config.NewLogger(viperCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("storefront server starting", zap.String("version", version.Short()))

	if f := viperCfg.ConfigFileUsed(); f != "" {
		logger.Info("configuration loaded",
			zap.String("component", "config"),
			zap.String("source", f),
		)
	} else {
		logger.Warn("no configuration file found, using defaults",
			zap.String("component", "config"),
		)
	}

	// Open database
	dbPath := viperCfg.GetString("database.path")
	if dbPath == "" {
		dbPath = "storefront.db"
	}
	db, err := store.New(dbPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := db.CheckVersion(ctx, version.Version); err != nil {
		logger.Fatal("schema version check failed", zap.Error(err))
	}

	logger.Info("database initialized",
		zap.String("component", "database"),
		zap.String("path", dbPath),
	)

	// Settings repository for the branding snapshot.
	settings, err := store.NewSettings(ctx, db)
	if err != nil {
		logger.Fatal("failed to initialize settings store", zap.Error(err))
	}

	// Upstream API client.
	baseURL := viperCfg.GetString("upstream.base_url")
	timeout := viperCfg.GetDuration("upstream.timeout")
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	client := upstream.NewClient(baseURL, timeout, logger.Named("upstream"))
	logger.Info("upstream client initialized",
		zap.String("component", "upstream"),
		zap.String("base_url", baseURL),
	)

	// WebSocket handler for live theme pushes.
	wsHandler := ws.NewHandler(logger.Named("ws"))
	logger.Info("websocket handler initialized", zap.String("component", "ws"))

	// Branding store: snapshot-first load, then a remote fetch in the
	// background so the first render never waits on the network.
	brandingStore := branding.NewStore(settings, client, &wsThemeApplier{ws: wsHandler}, logger.Named("branding"))
	brandingStore.Load(ctx)
	go brandingStore.Fetch(ctx)

	brandingHandler := branding.NewHandler(brandingStore, logger.Named("branding"))

	// Periodic branding refresh.
	refreshInterval := viperCfg.GetDuration("branding.refresh_interval")
	if refreshInterval > 0 {
		go func() {
			ticker := time.NewTicker(refreshInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					brandingStore.Fetch(ctx)
				}
			}
		}()
		logger.Info("branding refresh scheduled",
			zap.String("component", "branding"),
			zap.Duration("interval", refreshInterval),
		)
	}

	catalogHandler := catalog.NewHandler(client, brandingStore, logger.Named("catalog"))

	// Create and start HTTP server
	addr := viperCfg.GetString("server.host") + ":" + viperCfg.GetString("server.port")
	if addr == ":" {
		addr = "0.0.0.0:8080"
	}
	logger.Info("HTTP server configured",
		zap.String("component", "server"),
		zap.String("addr", addr),
	)
	devMode := viperCfg.GetBool("server.dev_mode")
	readyCheck := server.ReadinessChecker(func(ctx context.Context) error {
		return db.DB().PingContext(ctx)
	})
	srv := server.New(addr, logger, readyCheck, devMode,
		catalogHandler, brandingHandler, wsHandler)

	// Start server in background
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("storefront server ready", zap.String("addr", addr))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("storefront server stopped")
}

// wsThemeApplier adapts the WebSocket handler to the branding.Applier
// interface. Lives in the composition root to avoid coupling branding -> ws.
type wsThemeApplier struct {
	ws *ws.Handler
}

func (a *wsThemeApplier) ApplyTheme(theme branding.ThemeState) {
	a.ws.BroadcastTheme(theme)
}
