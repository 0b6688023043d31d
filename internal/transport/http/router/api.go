package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"account-service/internal/core/auth"
	"account-service/internal/core/config"
	"account-service/internal/core/server"
	mdw "account-service/internal/transport/http/middleware"
)

// APIDeps 业务引擎依赖
type APIDeps struct {
	Log      *zap.Logger
	Config   *config.Config
	Health   Pinger
	JWT      *auth.JWTer // Config.JWT.Required 时必填
	Registry *Registry
}

func NewAPIEngine(d APIDeps) *gin.Engine {
	cfg := d.Config
	r := server.NewRouter(d.Log, server.Options{Mode: cfg.App.Mode, AllowOrigins: cfg.CORS.AllowOrigins})

	limiter := mdw.RateLimit(rate.Limit(cfg.Limits.RPS), cfg.Limits.Burst)
	if cfg.Limits.PerIP {
		limiter = mdw.RateLimitPerIP(rate.Limit(cfg.Limits.RPS), cfg.Limits.Burst, cfg.Limits.PerIPMaxClients)
	}
	r.Use(
		mdw.RequestID(),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		limiter,
		mdw.ConcurrencyLimit(cfg.Limits.MaxConcurrent),
		mdw.MaxBodyBytes(cfg.Limits.MaxBodyBytes()),
		mdw.Timeout(cfg.Limits.RequestTimeout()),
		mdw.TrimJSON(),
	)

	// 健康检查
	mountHealth(&r.RouterGroup, d.Health, d.Log)

	api := r.Group(cfg.App.HTTP.BasePath)
	if cfg.JWT.Required {
		api.Use(mdw.AuthJWT(d.JWT, ""))
	}
	if d.Registry != nil {
		d.Registry.MountAllAPI(api)
	}
	return r
}
