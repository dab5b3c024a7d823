// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/reviewdesk/citeengine/internal/api"
	"github.com/reviewdesk/citeengine/internal/store"
	"github.com/reviewdesk/citeengine/internal/tool"
)

const shutdownTimeout = 10 * time.Second

func newServeMCPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve-mcp",
		Short: "Serve the citation tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			s, err := store.Open(cfg.Store.Path)
			if err != nil {
				return err
			}

			server := mcp.NewServer(&mcp.Implementation{Name: "citeengine", Version: api.Version}, nil)
			tool.Register(server, tool.NewToolset(s, logger, cfg.HTTP.BaseURL))

			logger.Info("serving MCP on stdio", "store", storeName(cfg.Store.Path))
			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("mcp server: %w", err)
			}
			return nil
		},
	}
}

func newServeHTTPCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve-http",
		Short: "Serve the citation store and renderer over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			delay, err := cfg.EmphasisDelay()
			if err != nil {
				return err
			}
			s, err := store.Open(cfg.Store.Path)
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			controller := api.NewController(s, logger, delay)
			defer controller.Close()

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           api.NewRouter(controller, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("serving HTTP", "addr", cfg.HTTP.Addr, "store", storeName(cfg.Store.Path))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("http server: %w", err)
			case <-cmd.Context().Done():
			}

			logger.Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func storeName(path string) string {
	if path == "" {
		return "memory"
	}
	return path
}
