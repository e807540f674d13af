package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"daily-checkin/config"
	"daily-checkin/internal/dto"
	"daily-checkin/internal/model"
	"daily-checkin/internal/repository"
	"daily-checkin/internal/stats"
	pkgerrors "daily-checkin/pkg/errors"
)

// ── 打卡模块业务错误 ──

var (
	ErrCheckInFieldMissing  = errors.New("缺少必要的打卡信息")
	ErrCheckInInvalidDate   = errors.New("打卡日期格式无效")
	ErrCheckInInvalidMonth  = errors.New("月份格式无效")
	ErrCheckInIDMissing     = errors.New("缺少记录ID")
	ErrCheckInDuplicateDate = errors.New("今天已经打卡了")
	ErrCheckInNotFound      = errors.New("找不到指定的记录")
)

// Clock 当前时间来源
type Clock func() time.Time

// CheckInService 打卡业务接口
type CheckInService interface {
	List(ctx context.Context) ([]dto.CheckInRecordResponse, error)
	Create(ctx context.Context, req *dto.CreateCheckInRequest) (*dto.CheckInRecordResponse, error)
	CheckInToday(ctx context.Context, req *dto.TodayCheckInRequest) (*dto.CheckInRecordResponse, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, req *dto.StatsRequest) (*dto.CheckInStatsResponse, error)
	Calendar(ctx context.Context, req *dto.CalendarRequest) (*dto.CalendarResponse, error)
}

type checkInService struct {
	repo        *repository.Repository
	loc         *time.Location
	now         Clock
	defaultNote string
	logger      *zap.Logger
}

// NewCheckInService 创建 CheckInService 实例
// clock 为 nil 时使用 time.Now
func NewCheckInService(cfg *config.CheckInConfig, repo *repository.Repository, clock Clock, logger *zap.Logger) CheckInService {
	loc, err := cfg.Location()
	if err != nil {
		logger.Warn("打卡时区无效，回退到本地时区", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.Local
	}
	if clock == nil {
		clock = time.Now
	}
	return &checkInService{
		repo:        repo,
		loc:         loc,
		now:         clock,
		defaultNote: cfg.DefaultNote,
		logger:      logger,
	}
}

// ────────────────────── List ──────────────────────

func (s *checkInService) List(ctx context.Context) ([]dto.CheckInRecordResponse, error) {
	records, err := s.repo.CheckIn.List(ctx)
	if err != nil {
		s.logger.Error("查询打卡记录失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CheckInRecordResponse, 0, len(records))
	for i := range records {
		result = append(result, dto.ToCheckInRecordResponse(&records[i]))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *checkInService) Create(ctx context.Context, req *dto.CreateCheckInRequest) (*dto.CheckInRecordResponse, error) {
	if req.Date == "" || req.Time == "" || req.Note == "" {
		return nil, ErrCheckInFieldMissing
	}

	date, err := model.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckInInvalidDate, err)
	}

	rec := &model.CheckInRecord{
		ID:   uuid.NewString(),
		Date: date,
		Time: req.Time,
		Note: req.Note,
	}

	if err := s.repo.CheckIn.Create(ctx, rec); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			return nil, ErrCheckInDuplicateDate
		}
		s.logger.Error("创建打卡记录失败", zap.String("date", req.Date), zap.Error(err))
		return nil, err
	}

	s.logger.Debug("打卡成功", zap.String("id", rec.ID), zap.String("date", req.Date))

	resp := dto.ToCheckInRecordResponse(rec)
	return &resp, nil
}

// ────────────────────── CheckInToday ──────────────────────

func (s *checkInService) CheckInToday(ctx context.Context, req *dto.TodayCheckInRequest) (*dto.CheckInRecordResponse, error) {
	now := s.now().In(s.loc)

	note := req.Note
	if strings.TrimSpace(note) == "" {
		note = s.defaultNote
	}

	return s.Create(ctx, &dto.CreateCheckInRequest{
		Date: model.DateOf(now).String(),
		Time: now.Format("15:04:05"),
		Note: note,
	})
}

// ────────────────────── Delete ──────────────────────

func (s *checkInService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrCheckInIDMissing
	}

	if err := s.repo.CheckIn.Delete(ctx, id); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return ErrCheckInNotFound
		}
		s.logger.Error("删除打卡记录失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── Stats ──────────────────────

func (s *checkInService) Stats(ctx context.Context, req *dto.StatsRequest) (*dto.CheckInStatsResponse, error) {
	today, err := s.resolveToday(req.Today)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.CheckIn.List(ctx)
	if err != nil {
		s.logger.Error("查询打卡记录失败", zap.Error(err))
		return nil, err
	}

	summary := stats.Compute(stats.Dates(records), today)
	return &summary, nil
}

// ────────────────────── Calendar ──────────────────────

func (s *checkInService) Calendar(ctx context.Context, req *dto.CalendarRequest) (*dto.CalendarResponse, error) {
	today, err := s.resolveToday(req.Today)
	if err != nil {
		return nil, err
	}

	month := stats.MonthOf(today)
	if req.Month != "" {
		month, err = stats.ParseMonth(req.Month)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCheckInInvalidMonth, err)
		}
	}

	records, err := s.repo.CheckIn.List(ctx)
	if err != nil {
		s.logger.Error("查询打卡记录失败", zap.Error(err))
		return nil, err
	}

	return &dto.CalendarResponse{
		Month: month.String(),
		Days:  stats.Calendar(records, month, today),
	}, nil
}

// ── 内部辅助方法 ──

// resolveToday 解析调用方指定的"今天"，为空时取业务时区下的当天
func (s *checkInService) resolveToday(text string) (model.Date, error) {
	if text == "" {
		return model.DateOf(s.now().In(s.loc)), nil
	}
	today, err := model.ParseDate(text)
	if err != nil {
		return model.Date{}, fmt.Errorf("%w: %v", ErrCheckInInvalidDate, err)
	}
	return today, nil
}
