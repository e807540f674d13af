package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daily-checkin/pkg/response"
)

// Recovery panic 恢复中间件
// 记录堆栈后统一返回 500 与通用错误文案
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("请求处理 panic",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Stack("stack"),
		)
		response.InternalError(c)
		c.Abort()
	})
}
