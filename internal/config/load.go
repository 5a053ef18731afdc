package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional config.yaml in the working
// directory and from environment variables with the LEXIKON_ prefix
// (e.g. LEXIKON_SERVER_PORT, LEXIKON_DATABASE_URL). Environment variables
// take precedence over file values, which take precedence over defaults.
// The resulting Config is validated before being returned.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the environment can carry
		// everything required.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("LEXIKON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every setting that has a sensible default, so a
// minimal environment only needs the database URL and JWT secret.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	// Registered empty so viper knows the keys and env-only deployments
	// work; validation rejects them if they stay empty.
	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwt_secret", "")

	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_lifetime_minutes", 10080) // 7 days
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("scheduler.queue_limit", 20)
	v.SetDefault("scheduler.horizon_days", 14)

	// Engine tuning keys default to zero, meaning "use the engine's
	// built-in value". Registered so env-only deployments can set them.
	v.SetDefault("scheduler.max_interval_days", 0)
	v.SetDefault("scheduler.mastery_threshold", 0)
	v.SetDefault("scheduler.difficulty_threshold", 0)
	v.SetDefault("scheduler.daily_review_cap", 0)
	v.SetDefault("scheduler.quiet_hour_start", 0)
	v.SetDefault("scheduler.quiet_hour_end", 0)

	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.queue_size", 64)
}
