// Package main library API.
//
// @title           Library Service API
// @version         1.0
// @description     Book catalog and borrowing service.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"libraryservice/app/echoServer"
	"libraryservice/config"
	"libraryservice/util/database"
	"libraryservice/util/logger"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New(cfg.Env, cfg.LogLevel)

	if cfg.DBAutoMigrate {
		if err := database.MigrateUp(cfg.DBDriver, cfg.DatabaseURL); err != nil {
			log.Error("migrate failed", "err", err)
			os.Exit(1)
		}
		log.Info("migrations applied", "driver", cfg.DBDriver)
	}

	db, err := database.New(ctx, database.Config{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DatabaseURL,
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	e := echoServer.New(db, echoServer.Options{
		JWTSecret:  cfg.JWTSecret,
		JWTTTL:     cfg.JWTTTL,
		StaffEmail: cfg.BootstrapStaffEmail,
		BodyLimit:  cfg.BodyLimit,
		Log:        log,
		Tracer:     otel.Tracer("libraryservice"),
	})
	e.Server.ReadHeaderTimeout = 5 * time.Second

	go func() {
		log.Info("starting server", "addr", cfg.Addr(), "env", cfg.Env)
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "err", err)
	}
	log.Info("server stopped")
}
