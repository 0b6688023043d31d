package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"go.uber.org/zap/zaptest"

	"account-service/internal/core/auth"
	"account-service/internal/core/config"
	"account-service/internal/core/database/databasetest"
	"account-service/internal/repo"
	"account-service/internal/service"
	"account-service/internal/transport/http/handler"
	"account-service/internal/transport/http/router"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Mode = "test"
	cfg.App.HTTP.BasePath = "/v1"
	cfg.Limits.MaxBodyMB = 1
	cfg.Limits.RequestTimeoutSec = 5
	cfg.CORS.AllowOrigins = []string{"*"}
	return cfg
}

func newAPI(t *testing.T, cfg *config.Config, jwter *auth.JWTer) http.Handler {
	l := zaptest.NewLogger(t)
	svc := service.NewAccountService(repo.NewAccountRepo(databasetest.New(t)),
		service.WithLogger(l),
		service.WithClock(func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }),
	)
	reg := &router.Registry{}
	reg.Register(handler.NewAccountHandler(svc, l))
	return router.NewAPIEngine(router.APIDeps{Log: l, Config: cfg, Health: svc, JWT: jwter, Registry: reg})
}

func send(h http.Handler, method, path, body string, hdr ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type listBody struct {
	Rows []struct {
		ID       uint   `json:"id"`
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Status   string `json:"status"`
	} `json:"rows"`
	Count int64 `json:"count"`
}

func list(c *qt.C, h http.Handler) listBody {
	w := send(h, http.MethodGet, "/v1/list-user-accounts", "")
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	var out listBody
	c.Assert(json.Unmarshal(w.Body.Bytes(), &out), qt.IsNil)
	return out
}

func TestAccountLifecycle(t *testing.T) {
	c := qt.New(t)
	h := newAPI(t, testConfig(), nil)

	w := send(h, http.MethodPost, "/v1/add-user-account",
		`{"fullName":"  John Doe  ","email":" john@example.com ","birthDate":"1990-01-01"}`)
	c.Assert(w.Code, qt.Equals, http.StatusCreated)
	c.Assert(w.Body.String(), qt.JSONEquals, map[string]any{"message": "User has been added successfully"})

	got := list(c, h)
	c.Assert(got.Count, qt.Equals, int64(1))
	c.Assert(got.Rows[0].FullName, qt.Equals, "John Doe")
	c.Assert(got.Rows[0].Email, qt.Equals, "john@example.com")
	c.Assert(got.Rows[0].Status, qt.Equals, "active")
	c.Assert(got.Rows[0].Username, qt.HasLen, 24)

	w = send(h, http.MethodPost, "/v1/add-user-account",
		`{"fullName":"Jane","email":"john@example.com","birthDate":"1991-02-03"}`)
	c.Assert(w.Code, qt.Equals, http.StatusConflict)

	w = send(h, http.MethodPatch, "/v1/suspend-user-account", `{"id":1}`)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(list(c, h).Rows[0].Status, qt.Equals, "suspended")

	w = send(h, http.MethodPatch, "/v1/reactivate-user-account", `{"id":1}`)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(w.Body.String(), qt.JSONEquals, map[string]any{"message": "User account has been reactivated successfully"})

	w = send(h, http.MethodPut, "/v1/update-user-account",
		`{"id":"1","fullName":"John Smith","birthDate":"1990-01-01","status":"archived"}`)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(list(c, h).Count, qt.Equals, int64(0))

	w = send(h, http.MethodDelete, "/v1/remove-user-account", `{"id":1}`)
	c.Assert(w.Code, qt.Equals, http.StatusOK)

	w = send(h, http.MethodDelete, "/v1/remove-user-account", `{"id":1}`)
	c.Assert(w.Code, qt.Equals, http.StatusNotFound)
	c.Assert(w.Body.String(), qt.JSONEquals, map[string]any{"error": "account not found"})
}

func TestUpdateValidationMessages(t *testing.T) {
	c := qt.New(t)
	h := newAPI(t, testConfig(), nil)

	w := send(h, http.MethodPut, "/v1/update-user-account", `{"birthDate":"2010-01-01","status":"deleted"}`)
	c.Assert(w.Code, qt.Equals, http.StatusBadRequest)
	c.Assert(w.Body.String(), qt.JSONEquals, map[string]any{"errors": map[string]any{
		"id":        "Please provide id to update.",
		"fullName":  "Please provide valid full name, maximum length allowed is 100.",
		"birthDate": `Please provide valid date of birth, format should be "YYYY-MM-DD" and should be before 2008-10-19.`,
		"status":    `Please provide valid status, status can only be one of "active", "suspended", "archived".`,
	}})
}

func TestUpdateWrongTypesReportEveryField(t *testing.T) {
	c := qt.New(t)
	h := newAPI(t, testConfig(), nil)

	w := send(h, http.MethodPut, "/v1/update-user-account", `{"id":true,"fullName":5,"birthDate":19900101,"status":["active"]}`)
	c.Assert(w.Code, qt.Equals, http.StatusBadRequest)
	c.Assert(w.Body.String(), qt.JSONEquals, map[string]any{"errors": map[string]any{
		"id":        "Please provide id to update.",
		"fullName":  "Please provide valid full name, maximum length allowed is 100.",
		"birthDate": `Please provide valid date of birth, format should be "YYYY-MM-DD" and should be before 2008-10-19.`,
		"status":    `Please provide valid status, status can only be one of "active", "suspended", "archived".`,
	}})
}

func TestIDValidation(t *testing.T) {
	c := qt.New(t)
	h := newAPI(t, testConfig(), nil)

	w := send(h, http.MethodPatch, "/v1/suspend-user-account", `{}`)
	c.Assert(w.Code, qt.Equals, http.StatusBadRequest)
	c.Assert(w.Body.String(), qt.JSONEquals, map[string]any{"errors": map[string]any{"id": "This field is required"}})

	w = send(h, http.MethodPatch, "/v1/suspend-user-account", `{"id":0}`)
	c.Assert(w.Code, qt.Equals, http.StatusBadRequest)
	c.Assert(w.Body.String(), qt.JSONEquals, map[string]any{"errors": map[string]any{"id": "Value must be greater than or equal to 1"}})

	w = send(h, http.MethodPatch, "/v1/reactivate-user-account", `{"id":99}`)
	c.Assert(w.Code, qt.Equals, http.StatusNotFound)
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	c := qt.New(t)
	l := zaptest.NewLogger(t)

	h := router.NewAPIEngine(router.APIDeps{Log: l, Config: testConfig(), Health: pinger{}})
	w := send(h, http.MethodGet, "/health", "")
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(w.Body.String(), qt.JSONEquals, map[string]any{"ok": 1})

	h = router.NewAPIEngine(router.APIDeps{Log: l, Config: testConfig(), Health: pinger{errors.New("db down")}})
	w = send(h, http.MethodGet, "/health", "")
	c.Assert(w.Code, qt.Equals, http.StatusServiceUnavailable)
	c.Assert(w.Body.String(), qt.JSONEquals, map[string]any{"error": "database unavailable"})
}

func TestOpsEngine(t *testing.T) {
	c := qt.New(t)
	h := router.NewOpsEngine(zaptest.NewLogger(t), pinger{})

	c.Assert(send(h, http.MethodGet, "/health", "").Code, qt.Equals, http.StatusOK)
	w := send(h, http.MethodGet, "/metrics", "")
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(w.Body.String(), qt.Contains, "http_requests_in_flight")
}

func TestJWTRequired(t *testing.T) {
	c := qt.New(t)
	cfg := testConfig()
	cfg.JWT.Required = true
	jwter, err := auth.New("s3cret", "account-service", time.Minute)
	c.Assert(err, qt.IsNil)
	h := newAPI(t, cfg, jwter)

	c.Assert(send(h, http.MethodGet, "/v1/list-user-accounts", "").Code, qt.Equals, http.StatusUnauthorized)
	// 健康检查不需要令牌
	c.Assert(send(h, http.MethodGet, "/health", "").Code, qt.Equals, http.StatusOK)

	tok, err := jwter.Issue("ops", auth.RoleOperator)
	c.Assert(err, qt.IsNil)
	w := send(h, http.MethodGet, "/v1/list-user-accounts", "", "Authorization", "Bearer "+tok)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
}

