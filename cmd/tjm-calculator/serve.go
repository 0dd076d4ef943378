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

	"github.com/iwvelando/tjm-calculator/internal/config"
	"github.com/iwvelando/tjm-calculator/internal/metrics"
	"github.com/iwvelando/tjm-calculator/internal/server"
	"github.com/iwvelando/tjm-calculator/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagServerConfig string
	flagAddress      string
	flagMaxBodySize  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator page and JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		serverCfg, err := server.LoadConfig(flagServerConfig)
		if err != nil {
			return err
		}
		if flagAddress != "" {
			serverCfg.Address = flagAddress
		}
		if flagMaxBodySize != "" {
			size, err := server.ParseSize(flagMaxBodySize)
			if err != nil {
				return err
			}
			serverCfg.SetBodySizeBytes(size)
		}

		// Server-specific logging settings win over the application config.
		if serverCfg.Logging != (config.LoggingConfig{}) {
			serverLogger, err := initializeLogger(serverCfg.Logging, flagLogLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize server logger: %w", err)
			}
			_ = logger.Sync()
			logger = serverLogger
		}

		sender, err := newSender()
		if err != nil {
			return err
		}

		handler := server.NewHandler(server.Options{
			Logger:      logger,
			MaxBodySize: serverCfg.BodySizeBytes(),
			Version:     version,
			Sender:      sender,
			Metrics:     metrics.New(),
			Upsell:      conf.Upsell,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, serverCfg.Address, handler, serverCfg.ShutdownTimeoutDuration())
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagServerConfig, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	serveCmd.Flags().StringVar(&flagAddress, "address", "", "listen address override (e.g. :8080)")
	serveCmd.Flags().StringVar(&flagMaxBodySize, "max-body-size", "", "request body limit override (e.g. 64K)")
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down.
func serve(ctx context.Context, address string, handler http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting web server",
			zap.String("op", "main.serve"),
			zap.String("address", address),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("web server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down web server",
		zap.String("op", "main.serve"),
	)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
