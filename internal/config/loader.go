package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides (FILEMANIFEST_SCAN_MAX_DEPTH, ...)
const EnvPrefix = "FILEMANIFEST"

// Load loads configuration from file, environment, and defaults.
// Uses the global viper instance to access CLI flag bindings.
func Load() (*Config, error) {
	cfg, _, err := load(viper.GetViper())
	return cfg, err
}

// LoadWithViper loads configuration into a fresh viper instance and
// returns it alongside the config, so callers can inspect the file used.
func LoadWithViper() (*Config, *viper.Viper, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, *viper.Viper, error) {
	setDefaults(v)

	// Search for config.yaml unless a file was set explicitly (--config);
	// SetConfigName would discard that file.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, err
	}

	// Validate and apply defaults for invalid values
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return &cfg, v, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("scan.max_depth", d.Scan.MaxDepth)
	v.SetDefault("scan.root_label", d.Scan.RootLabel)
	v.SetDefault("scan.exclude", d.Scan.Exclude)
	v.SetDefault("scan.extensions", d.Scan.Extensions)
	v.SetDefault("scan.follow_symlinks", d.Scan.FollowSymlinks)

	v.SetDefault("output.path", d.Output.Path)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.indent", d.Output.Indent)
	v.SetDefault("output.gzip", d.Output.Gzip)

	v.SetDefault("watch.debounce", d.Watch.Debounce)

	v.SetDefault("batch.workers", d.Batch.Workers)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir(), 0755)
}

// Save writes cfg as YAML to path, creating parent directories.
// An empty path means ConfigFilePath().
func Save(cfg *Config, path string) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if path == "" {
		path = ConfigFilePath()
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
