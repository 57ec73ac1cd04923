package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kiranmohan-hh/mcp-server/internal/config"
)

// Exit codes.
const (
	ExitSuccess          = 0
	ExitGenericError     = 1
	ExitConfigInvalid    = 2
	ExitTransportFailure = 4
)

// GlobalFlags holds flags shared across all commands.
type GlobalFlags struct {
	ConfigPath string
	Subdomain  string
	APIToken   string
	ActAs      string
}

var globalFlags GlobalFlags

var rootCmd = &cobra.Command{
	Use:   "glean-mcp",
	Short: "MCP server exposing Glean search and chat as tools",
	Long: "glean-mcp bridges the Glean API into the Model Context Protocol: it advertises\n" +
		"glean_search and glean_chat tools over stdio and forwards validated calls to\n" +
		"your Glean instance.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// transportError marks a failure of the stdio transport itself, the one
// process-fatal condition beyond bad config.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func init() {
	rootCmd.PersistentFlags().StringVar(&globalFlags.ConfigPath, "config", "", "config file path (default: .glean-mcp.toml when present)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.Subdomain, "subdomain", "", "Glean instance subdomain (overrides GLEAN_SUBDOMAIN)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.APIToken, "api-token", "", "Glean API token (overrides GLEAN_API_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.ActAs, "act-as", "", "impersonated identity, requires a global token (overrides GLEAN_ACT_AS)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command and returns an error; the caller maps it to
// an exit code via ExitCodeFor.
func Execute() error {
	return rootCmd.Execute()
}

// ExitCodeFor maps a command error onto the process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var transport *transportError
	if errors.As(err, &transport) {
		return ExitTransportFailure
	}
	if strings.Contains(err.Error(), "CONFIG_INVALID") {
		return ExitConfigInvalid
	}
	return ExitGenericError
}

func loadConfig() (*config.Config, error) {
	overrides := &config.Overrides{}
	if globalFlags.Subdomain != "" {
		overrides.Subdomain = &globalFlags.Subdomain
	}
	if globalFlags.APIToken != "" {
		overrides.APIToken = &globalFlags.APIToken
	}
	if globalFlags.ActAs != "" {
		overrides.ActAs = &globalFlags.ActAs
	}
	return config.Load(globalFlags.ConfigPath, overrides)
}
