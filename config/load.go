package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

func Load() App {
	cfg := App{
		Port:     getenv("APP_PORT", "8080"),
		Env:      getenv("APP_ENV", "dev"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		DatabaseURL:       must("DATABASE_URL"),
		DBDriver:          getenv("DB_DRIVER", "pgx"),
		DBMaxConns:        getenvInt32("DB_MAX_CONNS", 25),
		DBMinConns:        getenvInt32("DB_MIN_CONNS", 2),
		DBMaxConnLifetime: getenvDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
		DBAutoMigrate:     getenvBool("DB_AUTO_MIGRATE", false),

		JWTSecret: getenv("JWT_SECRET", "local_dev_secret"),
		JWTTTL:    getenvDuration("JWT_TTL", 24*time.Hour),

		BootstrapStaffEmail: strings.ToLower(strings.TrimSpace(os.Getenv("BOOTSTRAP_STAFF_EMAIL"))),
		BodyLimit:           getenv("BODY_LIMIT", "1M"),
	}
	// PORT is what most platforms inject.
	if p := os.Getenv("PORT"); p != "" {
		cfg.Port = p
	}
	return cfg
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}

func getenvInt32(k string, def int32) int32 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		slog.Warn("invalid int env, using default", "key", k, "value", v)
		return def
	}
	return int32(n)
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration env, using default", "key", k, "value", v)
		return def
	}
	return d
}

func getenvBool(k string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(k)))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes"
}
