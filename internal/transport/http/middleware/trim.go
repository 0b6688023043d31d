package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	resp "account-service/internal/transport/http/response"
)

// TrimJSON 去掉 JSON 请求体里所有字符串值的首尾空白；解析失败时原样放行，交给绑定报错
func TrimJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || !strings.Contains(c.ContentType(), "json") {
			c.Next()
			return
		}
		raw, err := io.ReadAll(c.Request.Body)
		_ = c.Request.Body.Close()
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				resp.Abort(c, http.StatusRequestEntityTooLarge, "")
				return
			}
			resp.Abort(c, http.StatusBadRequest, "")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(trimBody(raw)))
		c.Next()
	}
}

func trimBody(raw []byte) []byte {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return raw
	}
	out, err := json.Marshal(trimValue(v))
	if err != nil {
		return raw
	}
	return out
}

func trimValue(v any) any {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		for k, e := range t {
			t[k] = trimValue(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = trimValue(e)
		}
		return t
	default:
		return v
	}
}
