package console

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aussiebroadwan/sectors/pkg/sectorsdk"
)

// Config is the console configuration. Values come from, lowest precedence
// first, the defaults, the YAML file, the environment and command line flags.
type Config struct {
	APIURL   string        `yaml:"api_url"`
	Token    string        `yaml:"token"`
	Timeout  time.Duration `yaml:"timeout"`
	LogFile  string        `yaml:"log_file"`
	LogLevel string        `yaml:"log_level"`
}

// DefaultConfig points the console at a local API with no token.
func DefaultConfig() Config {
	return Config{
		APIURL:   "http://localhost:8080",
		Timeout:  sectorsdk.DefaultTimeout,
		LogFile:  "sectorctl.log",
		LogLevel: "info",
	}
}

// DefaultConfigPath is $XDG_CONFIG_HOME/sectorctl/config.yaml or the
// platform equivalent. It returns "" when no config directory is known.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sectorctl", "config.yaml")
}

// LoadConfig applies the YAML file at path and then the environment over the
// defaults. A missing file is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("SECTORS_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("SECTORS_TOKEN"); v != "" {
		cfg.Token = v
	}
	return cfg, nil
}

// Validate checks the API URL is an absolute http(s) URL and the timeout is
// positive.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api url %q: %w", c.APIURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api url %q: want http(s)://host[:port]", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// Client builds the SDK client the console talks through.
func (c Config) Client() *sectorsdk.Client {
	return sectorsdk.NewClient(c.APIURL,
		sectorsdk.WithToken(c.Token),
		sectorsdk.WithTimeout(c.Timeout),
	)
}
