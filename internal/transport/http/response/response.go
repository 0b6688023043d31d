package response

import "github.com/gin-gonic/gin"

// Message 成功提示体 {"message": "..."}
type Message struct {
	Message string `json:"message"`
}

// ErrorBody 失败体 {"error": "..."}
type ErrorBody struct {
	Error string `json:"error"`
}

// FieldErrors 校验失败体 {"errors": {"field": "msg"}}
type FieldErrors struct {
	Errors map[string]string `json:"errors"`
}

func OK(c *gin.Context, status int, msg string) {
	c.JSON(status, Message{Message: msg})
}

// Error 失败响应（customMsg 为空时用默认提示）
func Error(c *gin.Context, status int, customMsg string) {
	c.JSON(status, ErrorBody{Error: msgOr(status, customMsg)})
}

// Abort 中间件使用：终止链路并输出错误体
func Abort(c *gin.Context, status int, customMsg string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: msgOr(status, customMsg)})
}

func Fields(c *gin.Context, status int, fields map[string]string) {
	c.JSON(status, FieldErrors{Errors: fields})
}

func msgOr(status int, customMsg string) string {
	if customMsg != "" {
		return customMsg
	}
	return DefaultMsg(status)
}
