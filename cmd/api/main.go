package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"account-service/internal/core/auth"
	"account-service/internal/core/cache"
	"account-service/internal/core/config"
	"account-service/internal/core/database"
	"account-service/internal/core/logger"
	"account-service/internal/core/server"
	"account-service/internal/repo"
	"account-service/internal/service"
	"account-service/internal/transport/http/handler"
	"account-service/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, cleanup := logger.New(logger.Options{
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
		Rotate: logger.FileRotate{
			Enable:     cfg.Log.File.Enable,
			Filename:   cfg.Log.File.Filename,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	// 数据库（失败直接 Fatal）
	db, err := database.NewGorm(database.OptsFromConfig(cfg.DB, logger.ToWriter(log.Named("gorm"), zapcore.WarnLevel)))
	if err != nil {
		log.Fatal("db open", zap.Error(err), zap.String("dsn", database.MaskDSN(cfg.DB.DSN)))
	}
	log.Info("database connected", zap.String("driver", cfg.DB.Driver), zap.String("dsn", database.MaskDSN(cfg.DB.DSN)))
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	opts := []service.Option{service.WithLogger(log.Named("account"))}
	var rc *cache.Cache
	if cfg.Redis.Addr != "" {
		rc = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer func() { _ = rc.Close() }()
		pctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rc.Ping(pctx); err != nil {
			log.Warn("redis unreachable, list reads fall back to database", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		cancel()
		opts = append(opts, service.WithCache(rc, cfg.Redis.ListTTL()))
	}
	svc := service.NewAccountService(repo.NewAccountRepo(db), opts...)

	var jwter *auth.JWTer
	if cfg.JWT.Required {
		if jwter, err = auth.New(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL()); err != nil {
			log.Fatal("jwt", zap.Error(err))
		}
	}

	reg := &router.Registry{}
	reg.Register(handler.NewAccountHandler(svc, log))
	r := router.NewAPIEngine(router.APIDeps{Log: log, Config: cfg, Health: svc, JWT: jwter, Registry: reg})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)
	servers := []*http.Server{srv}

	baseURL := server.HumanURL(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	log.Info("account api starting",
		zap.String("addr", addr),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+cfg.App.HTTP.BasePath),
	)
	go serve(srv, log, "account api")

	// 运维端口（可选）
	if cfg.App.Admin.Enabled {
		opsAddr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
		ops := server.BuildServer(opsAddr, router.NewOpsEngine(log, svc), 5*time.Second, 10*time.Second, 60*time.Second)
		servers = append(servers, ops)
		log.Info("ops starting", zap.String("metrics", server.HumanURL(cfg.App.Admin.Host, cfg.App.Admin.Port)+"/metrics"))
		go serve(ops, log, "ops")
	}

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, s := range servers {
		if err := s.Shutdown(ctx); err != nil {
			log.Warn("shutdown", zap.String("addr", s.Addr), zap.Error(err))
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("account api stopped gracefully")
}

func serve(srv *http.Server, log *zap.Logger, name string) {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(name+" start FAILED", zap.Error(err))
	}
}
