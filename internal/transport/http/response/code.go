package response

import "net/http"

// 对外默认错误提示；未列出的状态码回退 http.StatusText
var CodeMsgMap = map[int]string{
	http.StatusBadRequest:            "bad request",
	http.StatusUnauthorized:          "unauthorized",
	http.StatusForbidden:             "forbidden",
	http.StatusNotFound:              "not found",
	http.StatusConflict:              "conflict",
	http.StatusRequestEntityTooLarge: "request body too large",
	http.StatusTooManyRequests:       "too many requests",
	http.StatusInternalServerError:   "internal server error",
	http.StatusServiceUnavailable:    "server busy",
	http.StatusGatewayTimeout:        "timeout",
}

func DefaultMsg(status int) string {
	if m, ok := CodeMsgMap[status]; ok {
		return m
	}
	return http.StatusText(status)
}
