package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel string
	Port     string

	MongoURI     string
	DBName       string
	MongoTimeout time.Duration

	RedisAddr     string
	RedisPassword string
	CartLockTTL   time.Duration
	CartLockWait  time.Duration

	JWTSecret     string
	JWTExpiration time.Duration

	DefaultPaymentOption string
	DefaultAddress       string
	DefaultWalletMoney   float64
}

// LoadEnv reads a .env file into the process environment when one exists.
// Variables already set in the environment win.
func LoadEnv() {
	_ = godotenv.Load()
}

func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func Load() (Config, error) {
	LoadEnv()

	cfg := Config{
		AppEnv:               GetEnv("APP_ENV", "development"),
		LogLevel:             GetEnv("LOG_LEVEL", "info"),
		Port:                 GetEnv("PORT", "8080"),
		MongoURI:             GetEnv("MONGO_URI", ""),
		DBName:               GetEnv("DB_NAME", ""),
		RedisAddr:            GetEnv("REDIS_ADDR", ""),
		RedisPassword:        GetEnv("REDIS_PASSWORD", ""),
		JWTSecret:            GetEnv("JWT_SECRET", ""),
		DefaultPaymentOption: GetEnv("DEFAULT_PAYMENT_OPTION", "PAYMENT_OPTION_DEFAULT"),
		DefaultAddress:       GetEnv("DEFAULT_ADDRESS", "ADDRESS_NOT_SET"),
	}

	var err error
	if cfg.MongoTimeout, err = getDuration("MONGO_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.CartLockTTL, err = getDuration("CART_LOCK_TTL", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.CartLockWait, err = getDuration("CART_LOCK_WAIT", 2*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.JWTExpiration, err = getDuration("JWT_EXPIRATION", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.DefaultWalletMoney, err = getFloat("DEFAULT_WALLET_MONEY", 500); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c Config) validate() error {
	var missing []string
	if c.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if c.DBName == "" {
		missing = append(missing, "DB_NAME")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if c.DefaultWalletMoney < 0 {
		return fmt.Errorf("DEFAULT_WALLET_MONEY must not be negative")
	}
	if c.CartLockTTL <= 0 {
		return fmt.Errorf("CART_LOCK_TTL must be positive")
	}
	if c.CartLockWait < 0 {
		return fmt.Errorf("CART_LOCK_WAIT must not be negative")
	}
	return nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := GetEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := GetEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}
