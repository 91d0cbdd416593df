package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Host inventory sources.
const (
	HostSourceAmbari = "ambari"
	HostSourceHCloud = "hcloud"
)

// Config holds the console configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Debug   bool          `mapstructure:"debug" yaml:"debug"`
	Hosts   HostsConfig   `mapstructure:"hosts" yaml:"hosts"`
	Archive ArchiveConfig `mapstructure:"archive" yaml:"archive"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// Timeouts are resolved from the environment, see LoadTimeouts.
	Timeouts *Timeouts `mapstructure:"-" yaml:"-"`
}

// ServerConfig points at the Ambari server.
type ServerConfig struct {
	URL      string `mapstructure:"url" yaml:"url"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
}

// HostsConfig selects where the assignable host pool comes from.
type HostsConfig struct {
	Source string       `mapstructure:"source" yaml:"source"` // ambari or hcloud
	HCloud HCloudConfig `mapstructure:"hcloud" yaml:"hcloud"`
}

// HCloudConfig configures host discovery from Hetzner Cloud servers.
type HCloudConfig struct {
	Token         string `mapstructure:"token" yaml:"token"`
	LabelSelector string `mapstructure:"label_selector" yaml:"label_selector"`
	UsePrivateIP  bool   `mapstructure:"use_private_ip" yaml:"use_private_ip"`
}

// ArchiveConfig configures the S3-compatible blueprint archive used by
// "cluster delete --archive".
type ArchiveConfig struct {
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint"`
	Region    string `mapstructure:"region" yaml:"region"`
	Bucket    string `mapstructure:"bucket" yaml:"bucket"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`
}

// Configured reports whether enough is set to talk to a bucket.
func (a ArchiveConfig) Configured() bool {
	return a.Endpoint != "" && a.Bucket != "" && a.AccessKey != "" && a.SecretKey != ""
}

// MetricsConfig configures the optional prometheus listener.
type MetricsConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:      "http://localhost:8080",
			User:     "admin",
			Password: "admin",
		},
		Hosts: HostsConfig{
			Source: HostSourceAmbari,
		},
		Archive: ArchiveConfig{
			Region: "us-east-1",
		},
	}
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.Server.URL)
	switch {
	case c.Server.URL == "":
		errs = append(errs, errors.New("server.url is required"))
	case err != nil:
		errs = append(errs, fmt.Errorf("server.url is invalid: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("server.url must use http or https, got %q", u.Scheme))
	case u.Host == "":
		errs = append(errs, errors.New("server.url has no host"))
	}

	switch c.Hosts.Source {
	case HostSourceAmbari:
	case HostSourceHCloud:
		if c.Hosts.HCloud.Token == "" {
			errs = append(errs, errors.New("hosts.hcloud.token is required when hosts.source is hcloud"))
		}
	default:
		errs = append(errs, fmt.Errorf("hosts.source must be %q or %q, got %q", HostSourceAmbari, HostSourceHCloud, c.Hosts.Source))
	}

	return errors.Join(errs...)
}

// RequestTimeout returns the per-request timeout for remote calls.
func (c *Config) RequestTimeout() time.Duration {
	if c.Timeouts == nil {
		return LoadTimeouts().Request
	}
	return c.Timeouts.Request
}
