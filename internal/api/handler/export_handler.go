package handler

import (
	"github.com/gin-gonic/gin"

	"daily-checkin/internal/service"
	"daily-checkin/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportCheckIns 导出打卡记录
// GET /api/checkin/export
func (h *ExportHandler) ExportCheckIns(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportCheckIns(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.Attachment(c, filename, service.XLSXContentType, buf.Bytes())
}

// ExportCalendar 导出打卡记录为 iCalendar，可直接导入日历应用
// GET /api/checkin/export.ics
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportCalendar(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.Attachment(c, filename, service.ICSContentType, buf.Bytes())
}

// handleExportError 导出失败一律按服务端错误处理，错误挂到上下文由日志中间件输出
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	_ = c.Error(err)
	response.InternalError(c)
}
