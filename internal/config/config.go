package config

// Config holds all application configuration, organized into logical
// groups.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"      validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
	Task      TaskConfig      `mapstructure:"task"`
}

// ServerConfig contains all HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains authentication and token settings.
type AuthConfig struct {
	JWTSecret              string `mapstructure:"jwt_secret"               validate:"required,min=32"`
	TokenLifetimeMinutes   int    `mapstructure:"token_lifetime_minutes"   validate:"required,gt=0"`
	RefreshLifetimeMinutes int    `mapstructure:"refresh_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost             int    `mapstructure:"bcrypt_cost"              validate:"omitempty,gte=4,lte=31"`
}

// SchedulerConfig tunes the scheduling engine. Zero values fall back to
// the engine's reference defaults.
type SchedulerConfig struct {
	MaxIntervalDays     int     `mapstructure:"max_interval_days"    validate:"omitempty,gt=0"`
	MasteryThreshold    int     `mapstructure:"mastery_threshold"    validate:"omitempty,gt=0,lte=100"`
	DifficultyThreshold float64 `mapstructure:"difficulty_threshold" validate:"omitempty,gt=0,lt=1"`
	DailyReviewCap      int     `mapstructure:"daily_review_cap"     validate:"omitempty,gt=0"`
	QueueLimit          int     `mapstructure:"queue_limit"          validate:"required,gt=0"`
	HorizonDays         int     `mapstructure:"horizon_days"         validate:"required,gt=0"`
	QuietHourStart      int     `mapstructure:"quiet_hour_start"     validate:"omitempty,gte=0,lt=24"`
	QuietHourEnd        int     `mapstructure:"quiet_hour_end"       validate:"omitempty,gte=0,lt=24"`
}

// TaskConfig tunes the background task runner.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"omitempty,gt=0"`
	QueueSize   int `mapstructure:"queue_size"   validate:"omitempty,gt=0"`
}
