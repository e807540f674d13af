package service

import (
	"go.uber.org/zap"

	"daily-checkin/config"
	"daily-checkin/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	CheckIn CheckInService
	Export  ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	clock Clock,
	logger *zap.Logger,
) *Service {
	return &Service{
		CheckIn: NewCheckInService(&cfg.CheckIn, repo, clock, logger),
		Export:  NewExportService(&cfg.CheckIn, repo, clock, logger),
	}
}
