package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`
	APIBaseURL    string `mapstructure:"API_BASE_URL"`
	DBDSN         string `mapstructure:"DB_DSN"`
	Environment   string `mapstructure:"ENV"`

	// Таймаут одного HTTP-запроса к маркетплейсу
	APITimeout time.Duration `mapstructure:"API_TIMEOUT_SECONDS"`

	// Интервалы адаптивного опроса входящих сообщений
	PollInitial time.Duration `mapstructure:"POLL_INITIAL_SECONDS"`
	PollMin     time.Duration `mapstructure:"POLL_MIN_SECONDS"`
	PollMax     time.Duration `mapstructure:"POLL_MAX_SECONDS"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	// Читаем напрямую из переменных окружения (после godotenv.Load они там)
	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		APIBaseURL:    os.Getenv("API_BASE_URL"),
		DBDSN:         os.Getenv("DB_DSN"),
		Environment:   os.Getenv("ENV"),
		APITimeout:    secondsEnv("API_TIMEOUT_SECONDS", 15*time.Second),
		PollInitial:   secondsEnv("POLL_INITIAL_SECONDS", 5*time.Second),
		PollMin:       secondsEnv("POLL_MIN_SECONDS", time.Second),
		PollMax:       secondsEnv("POLL_MAX_SECONDS", 10*time.Second),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

// secondsEnv читает длительность в секундах из переменной окружения
func secondsEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil || seconds <= 0 {
		log.Printf("⚠️  Invalid %s=%q, using default %s", key, raw, fallback)
		return fallback
	}
	return time.Duration(seconds * float64(time.Second))
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}
