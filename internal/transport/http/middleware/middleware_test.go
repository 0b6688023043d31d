package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"

	"account-service/internal/core/auth"
	mdw "account-service/internal/transport/http/middleware"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(r http.Handler, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func echoBody(c *gin.Context) {
	b, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "application/json", b)
}

func TestRequestID(t *testing.T) {
	c := qt.New(t)
	r := gin.New()
	r.Use(mdw.RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(mdw.KeyRequestID)) })

	w := serve(r, http.MethodGet, "/", "", map[string]string{mdw.KeyRequestID: "abc"})
	c.Assert(w.Body.String(), qt.Equals, "abc")
	c.Assert(w.Header().Get(mdw.KeyRequestID), qt.Equals, "abc")

	w = serve(r, http.MethodGet, "/", "", nil)
	c.Assert(w.Body.String(), qt.HasLen, 36)
	c.Assert(w.Header().Get(mdw.KeyRequestID), qt.Equals, w.Body.String())
}

func TestTrimJSON(t *testing.T) {
	c := qt.New(t)
	r := gin.New()
	r.Use(mdw.TrimJSON())
	r.POST("/", echoBody)

	w := serve(r, http.MethodPost, "/", `{"fullName":"  John Doe ","id":12,"tags":[" a ",{"x":"\tb\n"}],"ok":true}`, nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(w.Body.String(), qt.JSONEquals, map[string]any{
		"fullName": "John Doe",
		"id":       12,
		"tags":     []any{"a", map[string]any{"x": "b"}},
		"ok":       true,
	})

	// 非法 JSON 原样放行
	w = serve(r, http.MethodPost, "/", `{"fullName": " x"`, nil)
	c.Assert(w.Body.String(), qt.Equals, `{"fullName": " x"`)
}

func TestMaxBodyBytes(t *testing.T) {
	c := qt.New(t)
	r := gin.New()
	r.Use(mdw.MaxBodyBytes(8), mdw.TrimJSON())
	r.POST("/", echoBody)

	w := serve(r, http.MethodPost, "/", `{"a":"0123456789"}`, nil)
	c.Assert(w.Code, qt.Equals, http.StatusRequestEntityTooLarge)
	c.Assert(w.Body.String(), qt.JSONEquals, map[string]any{"error": "request body too large"})

	w = serve(r, http.MethodPost, "/", `{"a":1}`, nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
}

func TestRateLimit(t *testing.T) {
	c := qt.New(t)
	r := gin.New()
	r.Use(mdw.RateLimitPerIP(0.001, 1, 0))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	c.Assert(serve(r, http.MethodGet, "/", "", nil).Code, qt.Equals, http.StatusNoContent)
	w := serve(r, http.MethodGet, "/", "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusTooManyRequests)
	c.Assert(w.Body.String(), qt.JSONEquals, map[string]any{"error": "too many requests"})
}

func TestRateLimitPerIPEvictsIdleClients(t *testing.T) {
	c := qt.New(t)
	r := gin.New()
	r.Use(mdw.RateLimitPerIP(0.001, 1, 1))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	from := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	c.Assert(from("10.0.0.1:1000"), qt.Equals, http.StatusNoContent)
	c.Assert(from("10.0.0.1:1000"), qt.Equals, http.StatusTooManyRequests)
	// 只保留一个桶：新 IP 进来后 10.0.0.1 的桶被淘汰，重新计数
	c.Assert(from("10.0.0.2:1000"), qt.Equals, http.StatusNoContent)
	c.Assert(from("10.0.0.1:1000"), qt.Equals, http.StatusNoContent)
}

func TestConcurrencyLimit(t *testing.T) {
	c := qt.New(t)
	entered := make(chan struct{})
	release := make(chan struct{})
	r := gin.New()
	r.Use(mdw.ConcurrencyLimit(1))
	r.GET("/slow", func(c *gin.Context) {
		close(entered)
		<-release
		c.Status(http.StatusNoContent)
	})
	r.GET("/fast", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	done := make(chan int)
	go func() { done <- serve(r, http.MethodGet, "/slow", "", nil).Code }()
	<-entered

	w := serve(r, http.MethodGet, "/fast", "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusServiceUnavailable)
	c.Assert(w.Body.String(), qt.JSONEquals, map[string]any{"error": "server busy"})

	close(release)
	c.Assert(<-done, qt.Equals, http.StatusNoContent)
	c.Assert(serve(r, http.MethodGet, "/fast", "", nil).Code, qt.Equals, http.StatusNoContent)
}

func TestTimeout(t *testing.T) {
	c := qt.New(t)
	r := gin.New()
	r.Use(mdw.Timeout(10 * time.Millisecond))
	r.GET("/", func(c *gin.Context) { <-c.Request.Context().Done() })

	w := serve(r, http.MethodGet, "/", "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusGatewayTimeout)
	c.Assert(w.Body.String(), qt.JSONEquals, map[string]any{"error": "timeout"})
}

func TestAuthJWT(t *testing.T) {
	c := qt.New(t)
	j := &auth.JWTer{Secret: []byte("s3cret"), Issuer: "account-service", TTL: time.Minute}
	r := gin.New()
	r.Use(mdw.AuthJWT(j, "admin"))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(mdw.KeyUserID)) })

	w := serve(r, http.MethodGet, "/", "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusUnauthorized)
	c.Assert(w.Body.String(), qt.JSONEquals, map[string]any{"error": "missing token"})

	w = serve(r, http.MethodGet, "/", "", map[string]string{"Authorization": "Bearer nope"})
	c.Assert(w.Code, qt.Equals, http.StatusUnauthorized)

	tok, err := j.Issue("7", "user")
	c.Assert(err, qt.IsNil)
	w = serve(r, http.MethodGet, "/", "", map[string]string{"Authorization": "Bearer " + tok})
	c.Assert(w.Code, qt.Equals, http.StatusForbidden)

	tok, err = j.Issue("7", "admin")
	c.Assert(err, qt.IsNil)
	w = serve(r, http.MethodGet, "/", "", map[string]string{"Authorization": "Bearer " + tok})
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(w.Body.String(), qt.Equals, "7")
}

func TestAccessLogAndMetrics(t *testing.T) {
	c := qt.New(t)
	r := gin.New()
	r.Use(mdw.RequestID(), mdw.Metrics(), mdw.AccessLog(zaptest.NewLogger(t)))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", mdw.MetricsHandler())

	c.Assert(serve(r, http.MethodGet, "/ping?email=a@b.c", "", nil).Code, qt.Equals, http.StatusOK)
	w := serve(r, http.MethodGet, "/metrics", "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(w.Body.String(), qt.Contains, `http_requests_total{method="GET",path="/ping",status="200"}`)
}
