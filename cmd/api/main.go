package main

import (
	"log"

	"tritogether/internal/config"
	apihttp "tritogether/internal/http"
	"tritogether/internal/mailer"
	"tritogether/internal/ratelimit"
	"tritogether/internal/repo/gormdb"
)

func main() {
	cfg := config.FromEnv()

	db, err := gormdb.Open(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	mail := mailer.NewSMTPSender(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.MailFrom,
	})

	var limiter ratelimit.RateLimiter
	if cfg.RedisAddr != "" {
		limiter, err = ratelimit.NewRedisLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, nil)
		if err != nil {
			log.Fatalf("rate limiter: %v", err)
		}
	} else {
		limiter = ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{})
	}

	server := apihttp.NewServer(cfg, db, mail, limiter)
	if err := server.Run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
