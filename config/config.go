// Package config loads heartrisk settings from a YAML, TOML or JSON file
// with HEARTRISK_* environment overrides and validates them.
package config

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/heartrisk/boosting"
	"github.com/YuminosukeSato/heartrisk/factors"
	"github.com/YuminosukeSato/heartrisk/narrate"
	"github.com/YuminosukeSato/heartrisk/pkg/errors"
	"github.com/YuminosukeSato/heartrisk/pkg/log"
)

// EnvPrefix prefixes environment overrides, e.g. HEARTRISK_TRAINING_ROUNDS.
const EnvPrefix = "HEARTRISK"

// Config is the full application configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Training  TrainingConfig  `mapstructure:"training"`
	Data      DataConfig      `mapstructure:"data"`
	Narration NarrationConfig `mapstructure:"narration"`
}

// LogConfig mirrors log.Options.
type LogConfig struct {
	Level      string `mapstructure:"level"        validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format"       validate:"oneof=json text console"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"  validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups"  validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

// TrainingConfig holds the boosting hyperparameters.
type TrainingConfig struct {
	Rounds           int     `mapstructure:"rounds"             validate:"gt=0"`
	LearningRate     float64 `mapstructure:"learning_rate"      validate:"gt=0"`
	MaxDepth         int     `mapstructure:"max_depth"          validate:"gte=1"`
	MinPartitionSize int     `mapstructure:"min_partition_size" validate:"gte=1"`
	InitialLogit     float64 `mapstructure:"initial_logit"`
}

// DataConfig locates the training data.
type DataConfig struct {
	Path string `mapstructure:"path"`
}

// NarrationConfig selects and tunes the explanation provider.
type NarrationConfig struct {
	Provider    string        `mapstructure:"provider"    validate:"oneof=gemini anthropic openai mock local"`
	Model       string        `mapstructure:"model"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"    validate:"omitempty,url"`
	Language    string        `mapstructure:"language"    validate:"oneof=en tr"`
	Timeout     time.Duration `mapstructure:"timeout"     validate:"gt=0"`
	Temperature float64       `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int           `mapstructure:"max_tokens"  validate:"gt=0"`
	Breaker     BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig configures the circuit breaker around remote narration.
type BreakerConfig struct {
	Failures uint32        `mapstructure:"failures" validate:"gt=0"`
	Cooldown time.Duration `mapstructure:"cooldown" validate:"gt=0"`
}

// Default returns the built-in configuration. Narration defaults to the
// local template so that no API key is needed.
func Default() *Config {
	opts := boosting.DefaultOptions()
	return &Config{
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Training: TrainingConfig{
			Rounds:           opts.Rounds,
			LearningRate:     opts.LearningRate,
			MaxDepth:         opts.MaxDepth,
			MinPartitionSize: opts.MinPartitionSize,
			InitialLogit:     opts.InitialLogit,
		},
		Data: DataConfig{Path: "data/heart.csv"},
		Narration: NarrationConfig{
			Provider:    narrate.ProviderLocal,
			Language:    "en",
			Timeout:     narrate.DefaultTimeout,
			Temperature: narrate.DefaultTemperature,
			MaxTokens:   narrate.DefaultMaxTokens,
			Breaker: BreakerConfig{
				Failures: narrate.DefaultBreakerFailures,
				Cooldown: narrate.DefaultBreakerCooldown,
			},
		},
	}
}

// Load reads path (any format viper understands by extension) on top of the
// defaults, applies HEARTRISK_* environment overrides and validates the
// result. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.GetLoggerWithName("config").Debug("Configuration loaded",
		log.PathKey, path,
		"narration.provider", cfg.Narration.Provider,
	)
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("log.compress", d.Log.Compress)

	v.SetDefault("training.rounds", d.Training.Rounds)
	v.SetDefault("training.learning_rate", d.Training.LearningRate)
	v.SetDefault("training.max_depth", d.Training.MaxDepth)
	v.SetDefault("training.min_partition_size", d.Training.MinPartitionSize)
	v.SetDefault("training.initial_logit", d.Training.InitialLogit)

	v.SetDefault("data.path", d.Data.Path)

	v.SetDefault("narration.provider", d.Narration.Provider)
	v.SetDefault("narration.model", d.Narration.Model)
	v.SetDefault("narration.api_key", d.Narration.APIKey)
	v.SetDefault("narration.base_url", d.Narration.BaseURL)
	v.SetDefault("narration.language", d.Narration.Language)
	v.SetDefault("narration.timeout", d.Narration.Timeout)
	v.SetDefault("narration.temperature", d.Narration.Temperature)
	v.SetDefault("narration.max_tokens", d.Narration.MaxTokens)
	v.SetDefault("narration.breaker.failures", d.Narration.Breaker.Failures)
	v.SetDefault("narration.breaker.cooldown", d.Narration.Breaker.Cooldown)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks every field constraint and reports the first violation as
// a ValidationError named by its dotted key, e.g. "training.rounds".
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		key := fe.Namespace()
		if i := strings.IndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}
		reason := "must satisfy " + fe.Tag()
		if fe.Param() != "" {
			reason += "=" + fe.Param()
		}
		return errors.NewValidationError(key, reason, fe.Value())
	}
	return errors.Wrap(err, "validate config")
}

// TrainingOptions maps the training section to boosting options.
func (c *Config) TrainingOptions() []boosting.Option {
	return []boosting.Option{
		boosting.WithOptions(boosting.Options{
			Rounds:           c.Training.Rounds,
			LearningRate:     c.Training.LearningRate,
			MaxDepth:         c.Training.MaxDepth,
			MinPartitionSize: c.Training.MinPartitionSize,
			InitialLogit:     c.Training.InitialLogit,
		}),
	}
}

// Language returns the narration language.
func (c *Config) Language() (factors.Language, error) {
	return factors.ParseLanguage(c.Narration.Language)
}

// NarrationConfig maps the narration section to narrate.Config.
func (c *Config) NarrationConfig() (narrate.Config, error) {
	lang, err := c.Language()
	if err != nil {
		return narrate.Config{}, err
	}
	n := c.Narration
	return narrate.Config{
		Provider:        n.Provider,
		Model:           n.Model,
		APIKey:          n.APIKey,
		BaseURL:         n.BaseURL,
		Language:        lang,
		Timeout:         n.Timeout,
		Temperature:     n.Temperature,
		MaxTokens:       n.MaxTokens,
		BreakerFailures: n.Breaker.Failures,
		BreakerCooldown: n.Breaker.Cooldown,
	}, nil
}

// LogOptions maps the log section to log.Options.
func (c *Config) LogOptions() log.Options {
	return log.Options{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
		Compress:   c.Log.Compress,
	}
}
