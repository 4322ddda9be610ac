package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	//App
	Env string // dev / staging / prod
	//HTTP
	HTTPAddr string
	//Auth / Security
	JWTSecret            string
	JWTIssuer            string
	SessionTokenTTL      time.Duration
	BcryptCost           int
	RequireVerifiedEmail bool

	// Infrastructure
	DBAddr        string
	DBDebug       bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RabbitURL     string
	WebAppURL     string

	// Browser clients allowed to call the API cross-origin.
	CORSAllowedOrigins []string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// One-time token flows (email verify / password reset)
	VerifyEmailTokenTTL   time.Duration
	PasswordResetTokenTTL time.Duration

	// Signals read path
	SignalCacheTTL time.Duration
}

// Load reads configuration from the environment. A .env file is picked
// up when present; required values fail fast so the service never
// starts partially configured.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional; system environment still applies.
		log.Println("no .env file found, using system environment")
	}

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	// required values
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}
	cfg.JWTIssuer = getEnv("JWT_ISSUER", "stormiq")

	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}
	cfg.DBDebug = strings.EqualFold(os.Getenv("DB_DEBUG"), "true")

	// Infrastructure that can degrade: redis (cache) and rabbit
	// (notifier) are optional in dev; bootstrap decides the fallback.
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisDB = getInt("REDIS_DB", 0)
	cfg.RabbitURL = getEnv("RABBIT_URL", "")

	// Links embedded in outbound emails point at the web app.
	cfg.WebAppURL = getEnv("WEB_APP_URL", "http://localhost:3000")

	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	cfg.BcryptCost = getInt("BCRYPT_COST", 0)
	cfg.RequireVerifiedEmail = strings.EqualFold(os.Getenv("REQUIRE_VERIFIED_EMAIL"), "true")

	var err error
	if cfg.SessionTokenTTL, err = getDuration("SESSION_TOKEN_TTL", 365*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.VerifyEmailTokenTTL, err = getDuration("VERIFY_EMAIL_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.PasswordResetTokenTTL, err = getDuration("PASSWORD_RESET_TOKEN_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.SignalCacheTTL, err = getDuration("SIGNAL_CACHE_TTL", 30*time.Second); err != nil {
		return nil, err
	}

	if cfg.HTTPReadTimeout, err = getDuration("HTTP_READ_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTPWriteTimeout, err = getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTPIdleTimeout, err = getDuration("HTTP_IDLE_TIMEOUT", time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}
