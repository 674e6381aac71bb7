// Package config loads chart-segmenter settings from defaults, an optional
// YAML file, CHART_SEGMENTER_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/ironsheep/chart-segmenter/internal/segment"
)

// EnvPrefix is prepended to every environment variable key.
const EnvPrefix = "CHART_SEGMENTER"

// DefaultConfigFile is read from the working directory when no --config flag
// is given. Its absence is not an error.
const DefaultConfigFile = "chart-segmenter.yaml"

// Configuration keys.
const (
	KeyOutputDir    = "output_dir"
	KeyDebugOverlay = "debug_overlay"
	KeyWorkers      = "workers"
	KeyLogLevel     = "log_level"
	KeyInvert       = "invert"
	KeyContrast     = "contrast"
	KeyThreeWay     = "three_way"
	KeyTopDepth     = "top.depth"
	KeyTopK         = "top.top_k"
	KeyTopMin       = "top.min_candidates"
	KeyTopThreshold = "top.threshold"
	KeySubDepth     = "sub.depth"
	KeySubK         = "sub.top_k"
	KeySubMin       = "sub.min_candidates"
	KeySubThreshold = "sub.threshold"
)

// Config is the complete application configuration.
type Config struct {
	segment.Config `mapstructure:",squash"`

	OutputDir    string `mapstructure:"output_dir"`
	DebugOverlay bool   `mapstructure:"debug_overlay"`
	Workers      int    `mapstructure:"workers"`
	LogLevel     string `mapstructure:"log_level"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers every key with its default value. Keys must be
// registered for AutomaticEnv to see them during Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := segment.DefaultConfig()
	v.SetDefault(KeyOutputDir, "output")
	v.SetDefault(KeyDebugOverlay, false)
	v.SetDefault(KeyWorkers, 0)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyInvert, d.Invert)
	v.SetDefault(KeyContrast, d.Contrast)
	v.SetDefault(KeyThreeWay, d.ThreeWay)
	v.SetDefault(KeyTopDepth, d.Top.Depth)
	v.SetDefault(KeyTopK, d.Top.TopK)
	v.SetDefault(KeyTopMin, d.Top.MinCandidates)
	v.SetDefault(KeyTopThreshold, d.Top.Threshold)
	v.SetDefault(KeySubDepth, d.Sub.Depth)
	v.SetDefault(KeySubK, d.Sub.TopK)
	v.SetDefault(KeySubMin, d.Sub.MinCandidates)
	v.SetDefault(KeySubThreshold, d.Sub.Threshold)
}

// Load reads the config file (explicit path, or DefaultConfigFile if present)
// into v and decodes the merged settings.
//
// An explicit path that does not exist is an error; a missing default file
// is not.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found", path)
			}
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Segment().Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Segment returns the segmentation part of the configuration.
func (c *Config) Segment() segment.Config {
	return c.Config
}

// ConfigFileUsed returns the path of the file v read, or "" if none.
func ConfigFileUsed(v *viper.Viper) string {
	return v.ConfigFileUsed()
}
