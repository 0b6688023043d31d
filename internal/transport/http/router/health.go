package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpez "account-service/internal/transport/http/ez"
)

// Pinger 健康检查依赖（数据库）
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthOut struct {
	OK int `json:"ok"`
}

const healthTimeout = 2 * time.Second

func mountHealth(g *gin.RouterGroup, p Pinger, l *zap.Logger) {
	httpez.RegisterAction(httpez.New(g, l), httpez.Action[struct{}, healthOut]{
		Method: http.MethodGet,
		Path:   "/health",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (healthOut, error) {
			if p == nil {
				return healthOut{OK: 1}, nil
			}
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				return healthOut{}, httpez.Unavailable("database unavailable", err)
			}
			return healthOut{OK: 1}, nil
		},
	})
}
