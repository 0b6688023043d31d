package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"account-service/internal/core/server"
	mdw "account-service/internal/transport/http/middleware"
)

// NewOpsEngine 运维引擎：/health、/metrics；单独端口，不对外暴露
func NewOpsEngine(l *zap.Logger, health Pinger) *gin.Engine {
	r := server.NewRouter(l, server.Options{})
	r.Use(mdw.RequestID())

	mountHealth(&r.RouterGroup, health, l)
	r.GET("/metrics", mdw.MetricsHandler())
	return r
}
