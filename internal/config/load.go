package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "BLUEPRINTCTL"

// DefaultFileName is the config file looked up in the home directory.
const DefaultFileName = ".blueprintctl.yaml"

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"server":       "server.url",
	"user":         "server.user",
	"password":     "server.password",
	"debug":        "debug",
	"host-source":  "hosts.source",
	"metrics-addr": "metrics.addr",
}

// DefaultPath returns ~/.blueprintctl.yaml, or an empty string when the
// home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultFileName)
}

// Load assembles the configuration. An explicit path must exist; when path
// is empty the default file is read if present. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigType("yaml")
	switch {
	case path != "":
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	default:
		if def := DefaultPath(); def != "" {
			if _, err := os.Stat(def); err == nil {
				v.SetConfigFile(def)
				if err := v.ReadInConfig(); err != nil {
					return nil, fmt.Errorf("failed to read config file %s: %w", def, err)
				}
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// Same variable the hcloud CLI uses.
	if cfg.Hosts.HCloud.Token == "" {
		cfg.Hosts.HCloud.Token = os.Getenv("HCLOUD_TOKEN")
	}
	cfg.Timeouts = LoadTimeouts()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it on Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.url", d.Server.URL)
	v.SetDefault("server.user", d.Server.User)
	v.SetDefault("server.password", d.Server.Password)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("hosts.source", d.Hosts.Source)
	v.SetDefault("hosts.hcloud.token", d.Hosts.HCloud.Token)
	v.SetDefault("hosts.hcloud.label_selector", d.Hosts.HCloud.LabelSelector)
	v.SetDefault("hosts.hcloud.use_private_ip", d.Hosts.HCloud.UsePrivateIP)
	v.SetDefault("archive.endpoint", d.Archive.Endpoint)
	v.SetDefault("archive.region", d.Archive.Region)
	v.SetDefault("archive.bucket", d.Archive.Bucket)
	v.SetDefault("archive.access_key", d.Archive.AccessKey)
	v.SetDefault("archive.secret_key", d.Archive.SecretKey)
	v.SetDefault("metrics.addr", d.Metrics.Addr)
}

// ErrConfigExists is returned by WriteDefault when the target file exists
// and overwriting was not requested.
var ErrConfigExists = errors.New("config file already exists")
