package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medreport-platform/internal/auth"
	"medreport-platform/internal/config"
	"medreport-platform/internal/httpapi"
	"medreport-platform/internal/rbac"
	"medreport-platform/internal/users"
	"medreport-platform/internal/visits"
	"medreport-platform/pkg/logger"
	"medreport-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	throttle, err := utils.NewLoginThrottle(rdb, cfg.Auth.LoginThrottleLimit, cfg.Auth.LoginThrottleWindow)
	if err != nil {
		log.Error("throttle init failed", "err", err)
		os.Exit(1)
	}

	directory := auth.NewPostgresDirectory(db)
	sessions := auth.NewSessionService(directory, tokens, hasher, auth.WithThrottle(throttle))
	policy := rbac.NewPolicy(rbac.NewPostgresGrants(db))

	handlers := httpapi.Handlers{
		Sessions: sessions,
		Users:    users.NewService(users.NewPostgresRepo(db), hasher),
		Visits:   visits.NewService(visits.NewPostgresRepo(db)),
		Cookies: auth.CookieWriter{
			Secure:     cfg.IsProduction(),
			AccessTTL:  cfg.Auth.AccessTokenTTL,
			RefreshTTL: cfg.Auth.RefreshTokenTTL,
		},
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	gate := auth.RequireAccessToken(tokens, directory, cfg.Auth.DirectoryLookupTimeout)
	registerRoutes(r, handlers, gate, policy)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
