// Package config loads and validates application configuration from a YAML
// file and CASEBOARD_* environment variables via viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root of the application configuration.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Cache    CacheConfig    `mapstructure:"cache" yaml:"cache"`
	Resolver ResolverConfig `mapstructure:"resolver" yaml:"resolver"`
	Layout   LayoutConfig   `mapstructure:"layout" yaml:"layout"`
}

// LoggerConfig controls the zap logger and optional rotating file output.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"` // "console" or "json"
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"` // megabytes per rotated file
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"` // days
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// CacheConfig mirrors the layout cache constructor options.
type CacheConfig struct {
	MaxEntries      int           `mapstructure:"max_entries" yaml:"max_entries"`
	TTL             time.Duration `mapstructure:"ttl" yaml:"ttl"`
	RefreshOnAccess bool          `mapstructure:"refresh_on_access" yaml:"refresh_on_access"`
	MaxMemoryMB     int           `mapstructure:"max_memory_mb" yaml:"max_memory_mb"` // 0 = unlimited
	EnableMetrics   bool          `mapstructure:"enable_metrics" yaml:"enable_metrics"`
}

// ResolverConfig overrides the resolver's tuning constants. Zero values fall
// back to the built-in defaults.
type ResolverConfig struct {
	TierMultipliers map[string]float64 `mapstructure:"tier_multipliers" yaml:"tier_multipliers"`
	Strengths       map[string]float64 `mapstructure:"strengths" yaml:"strengths"`
	// ConnectionPoints is the importance awarded per edge touching a node.
	ConnectionPoints float64 `mapstructure:"connection_points" yaml:"connection_points"`
	MaxImportance    float64 `mapstructure:"max_importance" yaml:"max_importance"`
}

// LayoutConfig sets layout defaults for the CLI.
type LayoutConfig struct {
	Algorithm string  `mapstructure:"algorithm" yaml:"algorithm"`
	Direction string  `mapstructure:"direction" yaml:"direction"`
	Spacing   float64 `mapstructure:"spacing" yaml:"spacing"`
}

// SetDefaults registers the default value for every key on the given viper
// instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "caseboard")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)

	v.SetDefault("cache.max_entries", 50)
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.refresh_on_access", false)
	v.SetDefault("cache.max_memory_mb", 0)
	v.SetDefault("cache.enable_metrics", true)

	v.SetDefault("layout.algorithm", "grid")
	v.SetDefault("layout.spacing", 120.0)
}

// Load reads configuration from the given file (or ./caseboard.yaml when
// empty), layered under CASEBOARD_* environment variables. A missing config
// file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("caseboard")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("CASEBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
