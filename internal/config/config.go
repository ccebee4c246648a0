// Package config provides configuration management for the ocsf-protogen CLI.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Schema  SchemaConfig  `mapstructure:"schema" yaml:"schema"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// SchemaConfig controls where schema exports come from and where they are
// cached.
type SchemaConfig struct {
	URL      string `mapstructure:"url" yaml:"url"`
	Version  string `mapstructure:"version" yaml:"version"`
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir"`
}

// OutputConfig controls where generated proto files land.
type OutputConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("schema.url", "https://schema.ocsf.io/export/schema")
	v.SetDefault("schema.version", "1.7.0")
	v.SetDefault("schema.cache_dir", ".")
	v.SetDefault("output.dir", ".")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/ocsf-protogen")
	}

	// Environment variables override with OCSFGEN prefix, nested keys
	// spelled with underscores (schema.url -> OCSFGEN_SCHEMA_URL)
	v.SetEnvPrefix("OCSFGEN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Schema: SchemaConfig{
			URL:      "https://schema.ocsf.io/export/schema",
			Version:  "1.7.0",
			CacheDir: ".",
		},
		Output:  OutputConfig{Dir: "."},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// WriteDefault renders the default configuration as YAML to path, for
// bootstrapping a config file.
func WriteDefault(path string) error {
	content, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
