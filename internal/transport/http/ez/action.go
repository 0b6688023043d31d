package ez

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"account-service/internal/domain"
	mdw "account-service/internal/transport/http/middleware"
	resp "account-service/internal/transport/http/response"
)

// EZ 路由分组的轻封装
type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, log: l}
}

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定；空 body 视为 {}
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定
)

// AErr 带状态码的动作错误
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func Unavailable(msg string, err error) error {
	return &AErr{Code: http.StatusServiceUnavailable, Msg: msg, Err: err}
}

// Action 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // GET/POST/PUT/PATCH/DELETE
	Path    string
	Binder  Binder
	Status  int // 成功状态码，默认 200
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在当前分组下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			e.fail(c, err)
			return
		}
		out, err := a.Handler(c, &in)
		if err != nil {
			e.fail(c, err)
			return
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

func bind(c *gin.Context, b Binder, in any) error {
	var err error
	switch b {
	case BindJSON:
		err = c.ShouldBindJSON(in)
		if errors.Is(err, io.EOF) {
			return nil
		}
	case BindQuery:
		err = c.ShouldBindQuery(in)
	}
	if err == nil {
		return nil
	}
	return bindError(err)
}

// bindError 把解码错误转成字段级校验错误
func bindError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &AErr{Code: http.StatusRequestEntityTooLarge, Err: err}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return domain.FieldError(field, "Value must be "+kindName(typeErr.Type))
	}
	return domain.FieldError("body", "Invalid JSON body")
}

func kindName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "valid"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	case reflect.Struct, reflect.Map:
		return "an object"
	default:
		return "valid"
	}
}

// fail 统一错误映射；5xx 只记录原因，不回显
func (e EZ) fail(c *gin.Context, err error) {
	var ve *domain.ValidationError
	var ae *AErr
	switch {
	case errors.As(err, &ve):
		resp.Fields(c, http.StatusBadRequest, ve.Fields)
	case errors.Is(err, domain.ErrAccountNotFound):
		resp.Error(c, http.StatusNotFound, domain.ErrAccountNotFound.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		resp.Error(c, http.StatusConflict, domain.ErrEmailTaken.Error())
	case errors.As(err, &ae) && ae.Code < http.StatusInternalServerError:
		msg := ae.Msg
		if msg == "" {
			msg = resp.DefaultMsg(ae.Code)
		}
		resp.Error(c, ae.Code, msg)
	default:
		code, msg := http.StatusInternalServerError, ""
		if ae != nil {
			code, msg = ae.Code, ae.Msg
		} else if errors.Is(err, context.DeadlineExceeded) {
			code = http.StatusGatewayTimeout
		}
		_ = c.Error(err)
		e.log.Error("request failed",
			zap.String("rid", c.GetString(mdw.KeyRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", code),
			zap.Error(err),
		)
		resp.Error(c, code, msg)
	}
}
