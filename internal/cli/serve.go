package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kiranmohan-hh/mcp-server/internal/glean"
	"github.com/kiranmohan-hh/mcp-server/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the MCP tool protocol over stdin/stdout",
	Long: "serve reads MCP protocol frames from stdin and writes responses to stdout\n" +
		"until the client disconnects. All logging goes to stderr.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
		client := glean.NewClient(cfg, nil)
		srv := mcp.NewServer(cfg, client, logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.Serve(ctx); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return nil
			}
			// The transport failing to run is the one process-fatal
			// condition; per-request failures never reach here.
			logger.Error("transport failed", "error", err)
			return &transportError{err: err}
		}
		return nil
	},
}
