package vane

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

const (
	defaultReadTimeout  = 10
	defaultWriteTimeout = 15
	defaultIdleTimeout  = 60
)

// Config carries the server settings. Timeouts are in seconds; zero values
// fall back to the defaults.
type Config struct {
	Addr         string `yaml:"addr" toml:"addr"`
	ReadTimeout  int    `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout" toml:"write_timeout"`
	IdleTimeout  int    `yaml:"idle_timeout" toml:"idle_timeout"`
	TLSCertFile  string `yaml:"tls_cert_file" toml:"tls_cert_file"`
	TLSKeyFile   string `yaml:"tls_key_file" toml:"tls_key_file"`
}

// DefaultConfig returns a Config with the default timeouts filled in.
func DefaultConfig() Config {
	return Config{
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}
}

// LoadConfig reads a config file, YAML or TOML by extension.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config file: %v", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, errors.Errorf("unsupported config file extension: %v", path)
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "parse config file: %v", path)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = defaultIdleTimeout
	}
}

func (cfg Config) httpServer(handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}
}
