package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/time/rate"

	resp "account-service/internal/transport/http/response"
)

// RateLimit 全局令牌桶限速
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return pass
	}
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		resp.Abort(c, http.StatusTooManyRequests, "")
	}
}

// DefaultMaxClients 每 IP 限速最多跟踪的客户端数
const DefaultMaxClients = 10000

// RateLimitPerIP 每 IP 限速；最多保留 maxClients 个令牌桶，超出时淘汰最久未访问的 IP
func RateLimitPerIP(rps rate.Limit, burst, maxClients int) gin.HandlerFunc {
	if rps <= 0 {
		return pass
	}
	if maxClients <= 0 {
		maxClients = DefaultMaxClients
	}
	buckets, err := lru.New(maxClients)
	if err != nil {
		panic(err)
	}
	var mu sync.Mutex
	return func(c *gin.Context) {
		ip := c.ClientIP()
		mu.Lock()
		var lim *rate.Limiter
		if v, ok := buckets.Get(ip); ok {
			lim = v.(*rate.Limiter)
		} else {
			lim = rate.NewLimiter(rps, burst)
			buckets.Add(ip, lim)
		}
		mu.Unlock()
		if lim.Allow() {
			c.Next()
			return
		}
		resp.Abort(c, http.StatusTooManyRequests, "")
	}
}
