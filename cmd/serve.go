package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/imgworks/shrinker/internal/catalog"
	"github.com/imgworks/shrinker/internal/codec"
	"github.com/imgworks/shrinker/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	var root string
	var extensions []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a catalog of the directory tree over HTTP",
		Long: `Scans the directory tree once and serves the resulting catalog as a
read-only JSON API.`,
		Example: `  # Serve a catalog of ./photos on the default port 8888
  shrinker serve --root ./photos

  # Serve on a custom port
  shrinker serve --root ./photos --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Build(root, codec.New(), catalog.BuilderOptions{Allowlist: extensions})
			if err != nil {
				return fmt.Errorf("failed to build catalog: %w", err)
			}

			handler := handlers.New(cat)

			mux := http.NewServeMux()
			mux.HandleFunc("/api/catalog", handler.HandleCatalog)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Catalog API available", "addr", addr, "records", cat.Len())
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&root, "root", ".", "Directory tree to catalog")
	cmd.Flags().StringSliceVar(&extensions, "extensions", catalog.DefaultAllowlist(), "Image file extensions to catalog")

	return cmd
}
