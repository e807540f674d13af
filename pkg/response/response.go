package response

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// GenericErrorMessage 未预期错误统一对外文案
const GenericErrorMessage = "处理请求时出错"

// ErrorResponse 错误响应结构（前端直接展示 error 字段）
type ErrorResponse struct {
	Error string `json:"error"`
}

// ActionResponse 写操作成功响应
type ActionResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Record  interface{} `json:"record,omitempty"`
}

// ── 成功响应 ──

// OK 200 成功响应，data 原样序列化
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Success 200 写操作成功响应
func Success(c *gin.Context, message string, record interface{}) {
	c.JSON(http.StatusOK, ActionResponse{
		Success: true,
		Message: message,
		Record:  record,
	})
}

// Attachment 200 文件下载响应
func Attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentType, data)
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorResponse{Error: message})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// MsgPayloadTooLarge 请求体超限文案
const MsgPayloadTooLarge = "请求体过大"

// PayloadTooLarge 413
func PayloadTooLarge(c *gin.Context) {
	Error(c, http.StatusRequestEntityTooLarge, MsgPayloadTooLarge)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, GenericErrorMessage)
}
