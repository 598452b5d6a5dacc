package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds everything the process needs at startup. Values come from the
// environment, optionally seeded from a .env file in the working directory.
type Config struct {
	Env      string `env:"APP_ENV" env-default:"local"`
	HTTPAddr string `env:"HTTP_ADDR" env-default:":8080"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	DB  DB  `env-prefix:"DB_"`
	JWT JWT `env-prefix:"JWT_"`
}

type DB struct {
	DSN             string `env:"DSN" env-required:"true"`
	MaxOpenConns    int    `env:"MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int    `env:"MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime int    `env:"CONN_MAX_LIFETIME_MINUTES" env-default:"5"`
}

type JWT struct {
	Secret string `env:"SECRET" env-required:"true"`
	TTL    int    `env:"TTL_HOURS" env-default:"72"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	// Missing .env is fine; production relies on real environment variables.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewLogger builds the process logger. Development mode gets the console
// encoder, anything else the production JSON encoder.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Env == "prod" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
