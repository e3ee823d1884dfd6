package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env  string
	Port string

	RedisURL  string
	RedisPass string
	RedisDB   int

	JWTSecret string

	// Game engine knobs
	HouseEdge        float64
	MaxBet           float64
	MaxPayout        float64
	LockTTL          time.Duration
	VerifyDelay      time.Duration
	HistoryRetention time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:       getEnv("ENV", "development"),
		Port:      getEnv("PORT", "8080"),
		RedisURL:  getEnv("REDIS_URL", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),
		JWTSecret: getEnv("JWT_SECRET", ""),
	}

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.HouseEdge, err = getEnvFloat("HOUSE_EDGE", 0.01); err != nil {
		return nil, err
	}
	if cfg.MaxBet, err = getEnvFloat("MAX_BET", 10000); err != nil {
		return nil, err
	}
	if cfg.MaxPayout, err = getEnvFloat("MAX_PAYOUT", 1000000); err != nil {
		return nil, err
	}
	if cfg.LockTTL, err = getEnvDuration("LOCK_TTL", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.VerifyDelay, err = getEnvDuration("VERIFY_DELAY", 300*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.HistoryRetention, err = getEnvDuration("HISTORY_RETENTION", 30*24*time.Hour); err != nil {
		return nil, err
	}

	if cfg.HouseEdge < 0 || cfg.HouseEdge >= 1 {
		return nil, fmt.Errorf("HOUSE_EDGE must be in [0, 1), got %v", cfg.HouseEdge)
	}
	if cfg.Env == "production" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return d, nil
}
