package config

import "time"

type App struct {
	Port     string `env:"APP_PORT" default:"8080"`
	Env      string `env:"APP_ENV" default:"dev"`
	LogLevel string `env:"LOG_LEVEL" default:"info"`

	DatabaseURL       string        `env:"DATABASE_URL,required"`
	DBDriver          string        `env:"DB_DRIVER" default:"pgx"`
	DBMaxConns        int32         `env:"DB_MAX_CONNS" default:"25"`
	DBMinConns        int32         `env:"DB_MIN_CONNS" default:"2"`
	DBMaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"30m"`
	DBAutoMigrate     bool          `env:"DB_AUTO_MIGRATE" default:"false"`

	JWTSecret string        `env:"JWT_SECRET" default:"local_dev_secret"`
	JWTTTL    time.Duration `env:"JWT_TTL" default:"24h"`

	BootstrapStaffEmail string `env:"BOOTSTRAP_STAFF_EMAIL"`
	BodyLimit           string `env:"BODY_LIMIT" default:"1M"`
}

func (a App) Addr() string { return ":" + a.Port }
