// Package config handles configuration loading for the autodiscover CLI.
//
// Configuration is loaded from a YAML file with support for environment
// variable expansion (${VAR} or $VAR syntax). This allows credentials to
// be injected at runtime instead of living in the file.
//
// # Example Configuration
//
//	credentials:
//	  email: user@example.com
//	  username: DOMAIN\user
//	  password: ${AUTODISCOVER_PASSWORD}
//
//	dns:
//	  disabled: false
//	  server: 8.8.8.8:53
//
//	transport:
//	  timeout: 30s
//	  insecureSkipVerify: false
//
//	settings:
//	  - ExternalEwsUrl
//	  - ExternalEwsVersion
//
// See [Load] for loading configuration from a file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure
type Config struct {
	Credentials CredentialsConfig `yaml:"credentials"`
	DNS         DNSConfig         `yaml:"dns"`
	Transport   TransportConfig   `yaml:"transport"`
	Settings    []string          `yaml:"settings"`
}

// CredentialsConfig holds the mailbox credentials
type CredentialsConfig struct {
	Email    string `yaml:"email"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// DNSConfig holds SRV expansion settings
type DNSConfig struct {
	// Disabled turns off SRV candidate-domain expansion
	Disabled bool `yaml:"disabled"`
	// Server overrides the system resolver ("ip:port")
	Server string `yaml:"server"`
}

// TransportConfig holds HTTP probe settings
type TransportConfig struct {
	Timeout            Duration `yaml:"timeout"`
	InsecureSkipVerify bool     `yaml:"insecureSkipVerify"`
}

// Duration decodes YAML durations written in time.ParseDuration syntax
// ("30s", "1m30s").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ApplyDefaults()

	return &cfg, nil
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Transport.Timeout == 0 {
		c.Transport.Timeout = Duration(30 * time.Second)
	}
}
