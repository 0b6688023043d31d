package ez_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"

	"account-service/internal/domain"
	httpez "account-service/internal/transport/http/ez"
	mdw "account-service/internal/transport/http/middleware"
)

func init() { gin.SetMode(gin.TestMode) }

type in struct {
	Name  string `json:"name"`
	Count *int64 `json:"count"`
}

type out struct {
	Name string `json:"name"`
}

func engine(t *testing.T, h func(*gin.Context, *in) (out, error)) *gin.Engine {
	r := gin.New()
	r.Use(mdw.MaxBodyBytes(64))
	httpez.RegisterAction(httpez.New(r.Group("/x"), zaptest.NewLogger(t)), httpez.Action[in, out]{
		Method:  http.MethodPatch,
		Path:    "/thing",
		Binder:  httpez.BindJSON,
		Status:  http.StatusAccepted,
		Handler: h,
	})
	return r
}

func call(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/x/thing", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func echo(_ *gin.Context, in *in) (out, error) { return out{Name: in.Name}, nil }

func TestRegisterAction(t *testing.T) {
	c := qt.New(t)
	w := call(engine(t, echo), `{"name":"x"}`)
	c.Assert(w.Code, qt.Equals, http.StatusAccepted)
	c.Assert(w.Body.String(), qt.JSONEquals, out{Name: "x"})
}

func TestEmptyBodyIsEmptyObject(t *testing.T) {
	c := qt.New(t)
	var got *in
	w := call(engine(t, func(_ *gin.Context, i *in) (out, error) {
		got = i
		return out{}, nil
	}), "")
	c.Assert(w.Code, qt.Equals, http.StatusAccepted)
	c.Assert(got, qt.DeepEquals, &in{})
}

func TestBindErrors(t *testing.T) {
	tests := []struct {
		about  string
		body   string
		status int
		want   any
	}{{
		about:  "malformed",
		body:   `{"name":`,
		status: http.StatusBadRequest,
		want:   map[string]any{"errors": map[string]any{"body": "Invalid JSON body"}},
	}, {
		about:  "wrong type",
		body:   `{"count":"many"}`,
		status: http.StatusBadRequest,
		want:   map[string]any{"errors": map[string]any{"count": "Value must be an integer"}},
	}, {
		about:  "not an object",
		body:   `[1,2]`,
		status: http.StatusBadRequest,
		want:   map[string]any{"errors": map[string]any{"body": "Value must be an object"}},
	}, {
		about:  "too large",
		body:   `{"name":"` + strings.Repeat("a", 100) + `"}`,
		status: http.StatusRequestEntityTooLarge,
		want:   map[string]any{"error": "request body too large"},
	}}
	for _, test := range tests {
		qt.New(t).Run(test.about, func(c *qt.C) {
			w := call(engine(t, echo), test.body)
			c.Assert(w.Code, qt.Equals, test.status)
			c.Assert(w.Body.String(), qt.JSONEquals, test.want)
		})
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		about  string
		err    error
		status int
		want   any
	}{{
		about:  "validation",
		err:    fmt.Errorf("wrapped: %w", domain.FieldError("name", "This field is required")),
		status: http.StatusBadRequest,
		want:   map[string]any{"errors": map[string]any{"name": "This field is required"}},
	}, {
		about:  "not found",
		err:    domain.ErrAccountNotFound,
		status: http.StatusNotFound,
		want:   map[string]any{"error": "account not found"},
	}, {
		about:  "conflict",
		err:    domain.ErrEmailTaken,
		status: http.StatusConflict,
		want:   map[string]any{"error": "email is already registered"},
	}, {
		about:  "unavailable",
		err:    httpez.Unavailable("database unavailable", errors.New("dial tcp: refused")),
		status: http.StatusServiceUnavailable,
		want:   map[string]any{"error": "database unavailable"},
	}, {
		about:  "deadline",
		err:    fmt.Errorf("list accounts: %w", context.DeadlineExceeded),
		status: http.StatusGatewayTimeout,
		want:   map[string]any{"error": "timeout"},
	}, {
		about:  "opaque internal",
		err:    errors.New("pq: relation \"users\" does not exist"),
		status: http.StatusInternalServerError,
		want:   map[string]any{"error": "internal server error"},
	}}
	for _, test := range tests {
		qt.New(t).Run(test.about, func(c *qt.C) {
			w := call(engine(t, func(*gin.Context, *in) (out, error) { return out{}, test.err }), `{}`)
			c.Assert(w.Code, qt.Equals, test.status)
			c.Assert(w.Body.String(), qt.JSONEquals, test.want)
		})
	}
}
