package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/folio/internal/config"
	"github.com/rpggio/folio/internal/mcp"
	"github.com/rpggio/folio/internal/transport"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the content API, the editor and the MCP endpoint",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		mcpServer := mcp.NewServer(mcp.Config{
			Services: mcp.Services{
				Content:  a.store,
				Editor:   a.editor,
				Activity: a.activity,
			},
			TransportMode: a.cfg.Transport.Mode,
			Version:       version,
			Logger:        a.logger,
		})

		if a.cfg.Transport.Mode == config.TransportStdio {
			return runStdioMode(ctx, a.logger, mcpServer)
		}
		return runHTTPMode(ctx, a, mcpServer)
	},
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or context is canceled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server error: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, a *app, mcpServer *sdkmcp.Server) error {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := transport.NewServer(transport.Deps{
		Content:  a.store,
		Editor:   a.editor,
		Activity: a.activity,
		MCP:      mcpHandler,
		Logger:   a.logger,
	})

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", addr, "driver", a.cfg.Storage.Driver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("shutdown error", "error", err)
	}
	return nil
}

func init() {
	serveCmd.Flags().String("transport", "", "transport mode: http or stdio (overrides config)")
	serveCmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		mode, _ := cmd.Flags().GetString("transport")
		if mode != "" {
			return os.Setenv("FOLIO_TRANSPORT", mode)
		}
		return nil
	}
}
