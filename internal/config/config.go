package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config holds everything the server needs to reach the Glean API. Subdomain
// and APIToken are mandatory; their absence is a startup-fatal condition, not
// a per-request error.
type Config struct {
	// Subdomain selects the customer instance, e.g. "acme" for
	// https://acme-be.glean.com.
	Subdomain string `toml:"subdomain"`
	// APIToken is sent as a bearer token on every request.
	APIToken string `toml:"api_token"`
	// ActAs optionally impersonates another identity. Requires a global
	// token upstream.
	ActAs string `toml:"act_as"`
	// BaseURL overrides the derived API base URL (self-hosted deployments,
	// tests). Leave empty to derive from Subdomain.
	BaseURL string `toml:"base_url"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// Overrides holds CLI flag values that take precedence over env/file values.
// Only non-nil fields are applied.
type Overrides struct {
	Subdomain *string
	APIToken  *string
	ActAs     *string
}

// Default returns the built-in configuration before any file or env overlay.
func Default() Config {
	return Config{LogLevel: "info"}
}

// Load builds config with precedence: defaults, config file, env vars, CLI
// overrides. configPath may be empty; a missing file at the default location
// is not an error, a missing explicit path is.
func Load(configPath string, overrides *Overrides) (*Config, error) {
	cfg := Default()

	// Local dotenv files are a developer convenience; explicit env wins
	// because godotenv never overwrites existing variables.
	for _, path := range []string{".env.local", ".env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return nil, errors.Wrapf(err, "CONFIG_INVALID: failed loading %s", path)
			}
		}
	}

	explicit := configPath != ""
	if configPath == "" {
		configPath = ".glean-mcp.toml"
	}
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "CONFIG_INVALID: cannot read config file %s", configPath)
		}
	}

	// Env overlay. GLEAN_INSTANCE is accepted as an alias used by other
	// Glean tooling; GLEAN_SUBDOMAIN wins when both are set.
	if v := os.Getenv("GLEAN_INSTANCE"); v != "" {
		cfg.Subdomain = v
	}
	if v := os.Getenv("GLEAN_SUBDOMAIN"); v != "" {
		cfg.Subdomain = v
	}
	if v := os.Getenv("GLEAN_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv("GLEAN_ACT_AS"); v != "" {
		cfg.ActAs = v
	}
	if v := os.Getenv("GLEAN_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("GLEAN_MCP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if overrides != nil {
		applyOverrides(&cfg, overrides)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyOverrides(cfg *Config, o *Overrides) {
	if o.Subdomain != nil {
		cfg.Subdomain = *o.Subdomain
	}
	if o.APIToken != nil {
		cfg.APIToken = *o.APIToken
	}
	if o.ActAs != nil {
		cfg.ActAs = *o.ActAs
	}
}

// Validate normalizes and checks the mandatory identifiers. Errors are
// suitable for exit code 2.
func Validate(cfg *Config) error {
	cfg.Subdomain = strings.TrimSpace(cfg.Subdomain)
	cfg.APIToken = strings.TrimSpace(cfg.APIToken)
	cfg.ActAs = strings.TrimSpace(cfg.ActAs)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")

	if cfg.Subdomain == "" && cfg.BaseURL == "" {
		return errors.New("CONFIG_INVALID: GLEAN_SUBDOMAIN is required")
	}
	if cfg.APIToken == "" {
		return errors.New("CONFIG_INVALID: GLEAN_API_TOKEN is required")
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.Errorf("CONFIG_INVALID: unknown log level %q", cfg.LogLevel)
	}
	return nil
}

// APIBaseURL returns the REST endpoint prefix requests are posted under.
func (c *Config) APIBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return fmt.Sprintf("https://%s-be.glean.com/rest/api/v1", c.Subdomain)
}

// SlogLevel maps the configured level name onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
