package cli

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kiranmohan-hh/mcp-server/internal/glean"
	"github.com/kiranmohan-hh/mcp-server/internal/mcp"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the advertised tool descriptors as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
		srv := mcp.NewServer(cfg, glean.NewClient(cfg, nil), logger)

		type descriptor struct {
			Name        string         `json:"name"`
			Description string         `json:"description"`
			InputSchema map[string]any `json:"inputSchema"`
		}
		descriptors := make([]descriptor, 0, 2)
		for _, tool := range srv.ListTools() {
			descriptors = append(descriptors, descriptor{
				Name:        tool.Name,
				Description: tool.Description,
				InputSchema: tool.InputSchema,
			})
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"tools": descriptors})
	},
}
