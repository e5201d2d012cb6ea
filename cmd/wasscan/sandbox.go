// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lazycatapps/wasscan/internal/handler"
	"github.com/lazycatapps/wasscan/internal/pkg/logger"
	"github.com/lazycatapps/wasscan/internal/repository"
	"github.com/lazycatapps/wasscan/internal/router"
	"github.com/lazycatapps/wasscan/internal/service"
	"github.com/lazycatapps/wasscan/internal/types"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSandboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Run a local Security Center that serves /rest/wasScan",
		Long: `Start an HTTP server that answers the wasScan REST calls the way
Security Center does. --access-key and --secret-key, when set, are the keys
the server accepts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSandbox(loadConfig())
		},
	}

	cmd.Flags().String("host", "127.0.0.1", "Server host")
	cmd.Flags().IntP("port", "p", 8443, "Server port")
	cmd.Flags().String("data-dir", "", "Directory for persisted scans (default: in memory)")
	cmd.Flags().String("cors-allowed-origins", "*", "Comma-separated CORS allowed origins")
	viper.BindPFlags(cmd.Flags())

	return cmd
}

// newScanRepository picks file-backed storage when a data directory is set.
func newScanRepository(dataDir string) (repository.WasScanRepository, error) {
	if dataDir == "" {
		return repository.NewInMemoryWasScanRepository(), nil
	}
	return repository.NewFileBasedWasScanRepository(dataDir)
}

// runSandbox is the sandbox server execution function.
func runSandbox(cfg *types.Config) error {
	log, err := logger.NewWithConfig(cfg.Log)
	if err != nil {
		return err
	}

	log.Info("Starting sandbox Security Center")
	log.Info("=================================")
	if cfg.Sandbox.DataDir != "" {
		log.Info("  Data directory: %s", cfg.Sandbox.DataDir)
	} else {
		log.Info("  Data directory: (in memory)")
	}
	if cfg.Sandbox.AccessKey != "" {
		log.Info("API key authentication: ENABLED")
	} else {
		log.Info("API key authentication: DISABLED")
	}

	repo, err := newScanRepository(cfg.Sandbox.DataDir)
	if err != nil {
		log.Error("Failed to initialize scan repository: %v", err)
		return err
	}

	svc := service.NewWasScanService(repo, service.SystemClock{}, log)
	h := handler.NewWasScanHandler(svc, log)

	gin.SetMode(gin.ReleaseMode)
	engine := router.New(h).Setup(cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Sandbox.Host, cfg.Sandbox.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	failed := make(chan error, 1)

	log.Info("=================================")
	log.Info("Server listening on %s", addr)
	log.Info("Press Ctrl+C to stop")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed: %v", err)
			failed <- err
		}
	}()

	select {
	case err := <-failed:
		return err
	case <-quit:
	}

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	log.Info("Goodbye!")
	return nil
}
