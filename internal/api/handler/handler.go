package handler

import (
	"go.uber.org/zap"

	"daily-checkin/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	CheckIn *CheckInHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		CheckIn: NewCheckInHandler(svc.CheckIn, logger),
		Export:  NewExportHandler(svc.Export),
	}
}
