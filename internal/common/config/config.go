package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	API struct {
		// Base URL of the Backoffice auth backend, no trailing slash.
		BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	}

	Telegram struct {
		// Bot username used when building deep links (t.me/<bot>?startapp).
		BotName string `env:"TELEGRAM_BOT_NAME" envDefault:""`

		// Raw init data for headless runs outside a Telegram client.
		InitData string `env:"TELEGRAM_INIT_DATA" envDefault:""`
	}

	Storage struct {
		// Конфигурация хранилища токенов: memory или redis
		Backend string `env:"STORAGE_BACKEND" envDefault:"memory"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Language struct {
		Default string `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	}
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// Игнорируем ошибку, если .env файл не найден
		// В production окружении переменные могут быть установлены напрямую
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
