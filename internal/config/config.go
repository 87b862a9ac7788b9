// Package config handles stage-default loading for targetenc. Defaults come
// from a YAML file and environment variables, and are applied onto an
// encoder.Params before any explicit setter calls.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ShayCichocki/targetenc/internal/encoder"
	"github.com/ShayCichocki/targetenc/pkg/models"
)

// Config holds the file-configurable stage defaults.
type Config struct {
	Encoder EncoderConfig `mapstructure:"encoder"`
}

// EncoderConfig holds defaults for the target-encoder stage.
type EncoderConfig struct {
	// LabelColumn is the default label column name.
	LabelColumn string `mapstructure:"label_column"`
	// FoldColumn is the default fold column name; empty means unset.
	FoldColumn string `mapstructure:"fold_column"`
	// Holdout is the default holdout strategy name.
	Holdout string `mapstructure:"holdout"`
	// Noise holds the default noise settings.
	Noise NoiseConfig `mapstructure:"noise"`
	// Blending holds the default blending settings; nil leaves blending
	// disabled.
	Blending *BlendingConfig `mapstructure:"blending"`
}

// NoiseConfig mirrors models.NoiseSettings for file loading.
type NoiseConfig struct {
	Amount float64 `mapstructure:"amount"`
	Seed   int64   `mapstructure:"seed"`
}

// BlendingConfig mirrors models.BlendingSettings for file loading.
type BlendingConfig struct {
	InflectionPoint float64 `mapstructure:"inflection_point"`
	Smoothing       float64 `mapstructure:"smoothing"`
}

// Load loads configuration from the working directory and environment.
// Precedence (highest to lowest):
// 1. Environment variables (TARGETENC_* keys)
// 2. Project config (.targetenc.yaml in the current directory or a parent)
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if projectConfig := findProjectConfig(); projectConfig != "" {
		v.SetConfigFile(projectConfig)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", projectConfig, err)
		}
	}

	bindEnv(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	bindEnv(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// Default returns a Config with built-in defaults.
func Default() *Config {
	return &Config{
		Encoder: EncoderConfig{
			LabelColumn: encoder.DefaultLabelCol,
			Holdout:     string(models.HoldoutNone),
			Noise: NoiseConfig{
				Amount: models.DefaultNoiseSettings().Amount,
				Seed:   models.DefaultNoiseSettings().Seed,
			},
		},
	}
}

// Apply writes the loaded defaults onto a Params instance. Invalid holdout,
// noise, or blending values surface as ConfigurationErrors, the same way an
// explicit setter would fail.
func (c *Config) Apply(p *encoder.Params) error {
	p.SetLabelCol(c.Encoder.LabelColumn)
	p.SetFoldCol(c.Encoder.FoldColumn)

	strategy, err := models.ParseHoldoutStrategy(c.Encoder.Holdout)
	if err != nil {
		return err
	}
	if err := p.SetHoldoutStrategy(strategy); err != nil {
		return err
	}

	noise, err := models.NewNoiseSettings(c.Encoder.Noise.Amount, c.Encoder.Noise.Seed)
	if err != nil {
		return err
	}
	p.SetNoise(noise)

	if c.Encoder.Blending != nil {
		blending, err := models.NewBlendingSettings(c.Encoder.Blending.InflectionPoint, c.Encoder.Blending.Smoothing)
		if err != nil {
			return err
		}
		p.SetBlending(blending)
	}
	return nil
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("encoder.label_column", encoder.DefaultLabelCol)
	v.SetDefault("encoder.fold_column", "")
	v.SetDefault("encoder.holdout", string(models.HoldoutNone))
	v.SetDefault("encoder.noise.amount", models.DefaultNoiseSettings().Amount)
	v.SetDefault("encoder.noise.seed", models.DefaultNoiseSettings().Seed)
}

// bindEnv maps environment variables onto config keys.
func bindEnv(v *viper.Viper) {
	v.BindEnv("encoder.label_column", "TARGETENC_LABEL_COLUMN")
	v.BindEnv("encoder.fold_column", "TARGETENC_FOLD_COLUMN")
	v.BindEnv("encoder.holdout", "TARGETENC_HOLDOUT")
	v.BindEnv("encoder.noise.amount", "TARGETENC_NOISE_AMOUNT")
	v.BindEnv("encoder.noise.seed", "TARGETENC_NOISE_SEED")
}

// findProjectConfig searches for .targetenc.yaml in the current directory
// and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".targetenc.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}
