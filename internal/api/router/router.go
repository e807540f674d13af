package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daily-checkin/config"
	"daily-checkin/internal/api/handler"
	"daily-checkin/internal/api/middleware"
	"daily-checkin/pkg/redis"
	"daily-checkin/pkg/response"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil（Redis 未启用或连接失败）
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "接口不存在")
	})

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 写接口限流
	writeGuard := func(c *gin.Context) { c.Next() }
	if cfg.RateLimit.Enabled {
		writeGuard = middleware.RateLimit(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

	api := r.Group(cfg.Server.APIPrefix)
	{
		// 打卡模块
		checkin := api.Group("/checkin")
		{
			checkin.GET("", h.CheckIn.ListCheckIns)
			checkin.POST("", writeGuard, h.CheckIn.CreateCheckIn)
			checkin.DELETE("", writeGuard, h.CheckIn.DeleteCheckIn)
			checkin.POST("/today", writeGuard, h.CheckIn.CheckInToday)
			checkin.GET("/stats", h.CheckIn.GetStats)
			checkin.GET("/calendar", h.CheckIn.GetCalendar)
			checkin.GET("/export", h.Export.ExportCheckIns)
			checkin.GET("/export.ics", h.Export.ExportCalendar)
		}
	}

	return r
}
