package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	Bot      Bot
	Postgres Postgres
	Redis    Redis
	Payment  Payment
	HTTP     HTTP
	Watcher  Watcher
	Session  Session
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"tg-guarantor"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

// Load читает .env (если есть), окружение и валидирует значения.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(config); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}

	return config, nil
}
