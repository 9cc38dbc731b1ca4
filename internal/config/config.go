// Package config loads netinventory settings from an optional YAML file and
// NETINV_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. NETINV_DATA_FILE.
const EnvPrefix = "NETINV"

// Config is a nil-safe read-only view over a *viper.Viper.
type Config struct {
	v *viper.Viper
}

// New wraps v. A nil v yields a Config that returns zero values.
func New(v *viper.Viper) *Config {
	return &Config{v: v}
}

func (c *Config) GetString(key string) string {
	if c.v == nil {
		return ""
	}
	return c.v.GetString(key)
}

func (c *Config) GetInt(key string) int {
	if c.v == nil {
		return 0
	}
	return c.v.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	if c.v == nil {
		return false
	}
	return c.v.GetBool(key)
}

func (c *Config) GetDuration(key string) time.Duration {
	if c.v == nil {
		return 0
	}
	return c.v.GetDuration(key)
}

func (c *Config) IsSet(key string) bool {
	if c.v == nil {
		return false
	}
	return c.v.IsSet(key)
}

// Explicit reports whether key was set by the config file or the environment,
// as opposed to falling back to its default.
func (c *Config) Explicit(key string) bool {
	if c.v == nil {
		return false
	}
	if c.v.InConfig(key) {
		return true
	}
	_, ok := os.LookupEnv(EnvKey(key))
	return ok
}

// EnvKey returns the environment variable that overrides key.
func EnvKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Sub returns the subtree at key. A missing subtree yields an empty Config,
// never nil.
func (c *Config) Sub(key string) *Config {
	if c.v == nil {
		return New(nil)
	}
	return New(c.v.Sub(key))
}

func (c *Config) Unmarshal(target any) error {
	if c.v == nil {
		return nil
	}
	return c.v.Unmarshal(target)
}

// File returns the config file that was read, or "" when running on
// defaults and environment only.
func (c *Config) File() string {
	if c.v == nil {
		return ""
	}
	return c.v.ConfigFileUsed()
}

// Settings is the typed form of the configuration.
type Settings struct {
	Data    DataSettings    `mapstructure:"data"`
	Storage StorageSettings `mapstructure:"storage"`
	Export  ExportSettings  `mapstructure:"export"`
	Log     LogSettings     `mapstructure:"log"`
	Metrics MetricsSettings `mapstructure:"metrics"`
}

type DataSettings struct {
	File string `mapstructure:"file"`
}

type StorageSettings struct {
	Backend    string `mapstructure:"backend"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type ExportSettings struct {
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"`
}

// LogSettings configures the process logger. Output is one of stderr,
// stdout, file or discard; the Max* fields apply to file output only.
type LogSettings struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type MetricsSettings struct {
	// Textfile is where metrics are written at exit. Empty disables them.
	Textfile string `mapstructure:"textfile"`
}

// SetDefaults registers the default value of every known key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.file", "inventory.json")
	v.SetDefault("storage.backend", "json")
	v.SetDefault("storage.sqlite_path", "netinventory.db")
	v.SetDefault("export.file", "inventory_export.csv")
	v.SetDefault("export.format", "csv")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "file")
	v.SetDefault("log.file", "netinventory.log")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", false)
	v.SetDefault("metrics.textfile", "")
}

// Load builds a Config from defaults, the YAML file at path and the
// environment. With an empty path, ./netinventory.yaml is read if present.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("netinventory")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return New(v), nil
}

// Settings decodes the configuration and checks enumerated values.
func (c *Config) Settings() (Settings, error) {
	var s Settings
	if err := c.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("decode config: %w", err)
	}
	return s, s.Validate()
}

// Validate rejects unknown backend, format and output names.
func (s Settings) Validate() error {
	checks := []struct {
		key     string
		value   string
		allowed []string
	}{
		{"storage.backend", s.Storage.Backend, []string{"json", "sqlite"}},
		{"export.format", s.Export.Format, []string{"csv", "yaml", "yml"}},
		{"log.format", s.Log.Format, []string{"json", "console"}},
		{"log.output", s.Log.Output, []string{"stderr", "stdout", "file", "discard"}},
	}
	for _, c := range checks {
		if !slices.Contains(c.allowed, strings.ToLower(c.value)) {
			return fmt.Errorf("config %s: %q is not one of %s", c.key, c.value, strings.Join(c.allowed, ", "))
		}
	}
	return nil
}
