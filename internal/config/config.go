// Package config holds the memory service endpoint settings.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/giantswarm/memsearch-probe/internal/transport"
)

// GrpcurlEnv overrides the grpcurl binary when no path is configured.
const GrpcurlEnv = "GRPCURL_PATH"

// Config describes where and how SearchMemories is invoked.
type Config struct {
	Host    string        `yaml:"host"`
	Port    int           `yaml:"port"`
	Service string        `yaml:"service"`
	Grpcurl string        `yaml:"grpcurl"`
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Host:    "localhost",
		Port:    5051,
		Service: transport.DefaultService,
		Grpcurl: transport.DefaultBinary,
		Timeout: transport.DefaultTimeout,
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults with the environment fallback applied. The result is not
// validated, so callers can apply overrides first.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if cfg.Grpcurl == "" || cfg.Grpcurl == transport.DefaultBinary {
		if env := os.Getenv(GrpcurlEnv); env != "" {
			cfg.Grpcurl = env
		}
	}

	return cfg, nil
}

// Validate checks the settings are usable.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Service == "" {
		return fmt.Errorf("service must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// Address returns the combined host:port endpoint.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// TransportOptions converts the settings into grpcurl client options.
func (c Config) TransportOptions() []transport.Option {
	opts := []transport.Option{
		transport.WithAddress(c.Address()),
		transport.WithService(c.Service),
		transport.WithTimeout(c.Timeout),
	}
	if c.Grpcurl != "" {
		opts = append(opts, transport.WithBinary(c.Grpcurl))
	}
	return opts
}
