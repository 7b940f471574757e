package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr    string
	PostgresDSN string

	JWTSecret  string
	JWTExpiry  time.Duration
	BcryptCost int

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RateLimitRequests int
	RateLimitWindow   time.Duration
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":3000"
	}
	return Config{
		HTTPAddr:    addr,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		JWTSecret:  envDefault("JWT_SECRET", "your-secret-whatever"),
		JWTExpiry:  envDuration("JWT_EXPIRY", 30*24*time.Hour),
		BcryptCost: envInt("BCRYPT_COST", 10),

		SMTPHost: envDefault("SMTP_HOST", "localhost"),
		SMTPPort: envInt("SMTP_PORT", 465),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		MailFrom: envDefault("MAIL_FROM", "support@tritogether.app"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 10),
		RateLimitWindow:   envDuration("RATE_LIMIT_WINDOW", time.Minute),
	}
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return parsed
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return parsed
}
