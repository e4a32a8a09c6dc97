package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/badnails/TestProjectGateway/internal/adapters/httpserver"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(provide appProvider) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the confirmation flow over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := provide(cmd)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.config.Server.Addr
			}

			listener, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", addr, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serveHTTP(ctx, a, listener)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr from config)")

	return cmd
}

// serveHTTP serves until ctx is done, then drains in-flight requests.
func serveHTTP(ctx context.Context, a *app, listener net.Listener) error {
	handler := httpserver.NewHandler(a.controller, a.logger)
	server := &http.Server{
		Handler:           httpserver.NewRouter(handler, a.metrics.Handler(), a.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting server", "addr", listener.Addr().String(), "store", a.config.Store.Driver)
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutdown signal received, gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	a.logger.Info("server stopped")
	return nil
}
