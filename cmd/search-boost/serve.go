// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/search-boost/internal/api"
	"github.com/pdiddy/search-boost/internal/backend"
	"github.com/pdiddy/search-boost/internal/experiment"
	"github.com/pdiddy/search-boost/internal/history"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the transform, reconcile and experiment HTTP API",
	Long: `Serve starts an HTTP server exposing:

  POST /api/boost/transform   {query, boost_config}
  POST /api/boost/reconcile   {original, boosted}
  POST /api/boost/experiment  {query, boost_config}
  GET  /health

The experiment endpoint uses the configured backend; if the backend cannot be
built the endpoint answers 503 and the other endpoints still work.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from server.addr)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = appCfg.Server.Addr
	}

	var runner *experiment.Runner
	if be, err := backend.New(appCfg.Backend); err != nil {
		appLog.Warn("experiment endpoint disabled", zap.Error(err))
	} else {
		runner = &experiment.Runner{Backend: be}
		if appCfg.History.Path != "" {
			store, err := history.Open(appCfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()
			runner.History = store
		}
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(runner, appLog),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	appLog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
