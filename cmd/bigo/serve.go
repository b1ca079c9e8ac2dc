package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bigo/internal/api"
	"bigo/internal/auth"
	"bigo/internal/slogutil"
	"bigo/internal/store"

	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the bigo HTTP API server. The server exposes complexity
analysis over REST: POST /v1/analyze for verdicts, GET /v1/functions
for boundary listings, and GET /healthz for probes.

When auth is enabled in .bigo/config.json, requests must carry a
bearer token created with 'bigo token create'.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :7465)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	var st store.Store
	if cfg.Store.Enabled {
		sqlStore, err := openStore(repoRoot, logger)
		if err != nil {
			logger.Warn("Store unavailable, serving without persistence", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer sqlStore.Close()
			st = sqlStore
		}
	}

	var authMgr *auth.Manager
	if cfg.Server.Auth.Enabled {
		factory := slogutil.NewLoggerFactory(repoRoot, cfg, nil)
		defer factory.Close()

		keyStore, err := auth.OpenKeyStore(tokenDBPath(repoRoot, cfg), factory.APILogger())
		if err != nil {
			return fmt.Errorf("failed to open key store: %w", err)
		}
		defer keyStore.Close()

		authMgr, err = auth.NewManager(true, keyStore, factory.APILogger())
		if err != nil {
			return fmt.Errorf("failed to create auth manager: %w", err)
		}
	}

	server := api.NewServer(api.Options{
		Addr:     addr,
		RepoRoot: repoRoot,
		Store:    st,
		Auth:     authMgr,
		Logger:   logger,
	})

	// Setup graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		fmt.Printf("bigo HTTP API listening on %s\n", addr)
		fmt.Println("Press Ctrl+C to stop")
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
			return err
		}
	case sig := <-shutdown:
		logger.Info("Received shutdown signal", map[string]interface{}{
			"signal": sig.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during shutdown", map[string]interface{}{
				"error": err.Error(),
			})
			return err
		}
	}

	return nil
}
