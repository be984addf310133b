package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultBaseURL        = "http://127.0.0.1:8000/api/notes/"
	defaultRequestTimeout = 10 * time.Second
	defaultLogLevel       = "info"
)

const (
	EnvBaseURL        = "NOTEDECK_BASE_URL"
	EnvLogLevel       = "NOTEDECK_LOG_LEVEL"
	EnvRequestTimeout = "NOTEDECK_REQUEST_TIMEOUT"
)

type Config struct {
	Service ServiceConfig `toml:"service"`
	Logging LoggingConfig `toml:"logging"`
	UI      UIConfig      `toml:"ui"`
}

type ServiceConfig struct {
	BaseURL        string `toml:"base_url"`
	RequestTimeout string `toml:"request_timeout"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type UIConfig struct {
	Preview *bool `toml:"preview"`
}

func Default() Config {
	preview := true
	return Config{
		Service: ServiceConfig{
			BaseURL:        defaultBaseURL,
			RequestTimeout: defaultRequestTimeout.String(),
		},
		Logging: LoggingConfig{
			Level: defaultLogLevel,
		},
		UI: UIConfig{
			Preview: &preview,
		},
	}
}

// Load reads the default config file, then applies .env and environment
// overrides. A missing file is not an error.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (Config, error) {
	cfg := Default()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	loadDotEnv()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if value := strings.TrimSpace(os.Getenv(EnvBaseURL)); value != "" {
		c.Service.BaseURL = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvLogLevel)); value != "" {
		c.Logging.Level = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvRequestTimeout)); value != "" {
		c.Service.RequestTimeout = value
	}
}

func (c Config) Validate() error {
	if timeout := strings.TrimSpace(c.Service.RequestTimeout); timeout != "" {
		if _, err := time.ParseDuration(timeout); err != nil {
			return fmt.Errorf("invalid service request_timeout %q: %w", timeout, err)
		}
	}
	raw := strings.TrimSpace(c.Service.BaseURL)
	if raw == "" {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid service base_url %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid service base_url %q: scheme must be http or https", raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid service base_url %q: host is required", raw)
	}
	return nil
}

// BaseURL returns the collection endpoint, always ending in a slash.
func (c Config) BaseURL() string {
	raw := strings.TrimSpace(c.Service.BaseURL)
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimRight(raw, "/") + "/"
}

func (c Config) RequestTimeout() time.Duration {
	raw := strings.TrimSpace(c.Service.RequestTimeout)
	if raw == "" {
		return defaultRequestTimeout
	}
	timeout, err := time.ParseDuration(raw)
	if err != nil || timeout <= 0 {
		return defaultRequestTimeout
	}
	return timeout
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return defaultLogLevel
	}
	return level
}

func (c Config) PreviewEnabled() bool {
	if c.UI.Preview == nil {
		return true
	}
	return *c.UI.Preview
}

// loadDotEnv loads .env from the working directory. Variables already set in
// the environment win.
func loadDotEnv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	path := filepath.Join(wd, ".env")
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
