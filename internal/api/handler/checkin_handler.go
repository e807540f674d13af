package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daily-checkin/internal/dto"
	"daily-checkin/internal/service"
	"daily-checkin/pkg/response"
)

// 成功提示文案
const (
	msgCheckInCreated = "打卡成功"
	msgCheckInDeleted = "记录已删除"
)

// CheckInHandler 打卡模块 HTTP 处理器
type CheckInHandler struct {
	checkInSvc service.CheckInService
	logger     *zap.Logger
}

// NewCheckInHandler 创建 CheckInHandler
func NewCheckInHandler(checkInSvc service.CheckInService, logger *zap.Logger) *CheckInHandler {
	return &CheckInHandler{checkInSvc: checkInSvc, logger: logger}
}

// ListCheckIns 获取全部打卡记录（最新创建的在前）
// GET /api/checkin
func (h *CheckInHandler) ListCheckIns(c *gin.Context) {
	records, err := h.checkInSvc.List(c.Request.Context())
	if err != nil {
		h.handleCheckInError(c, err)
		return
	}

	response.OK(c, dto.CheckInListResponse{Records: records})
}

// CreateCheckIn 新增打卡记录
// POST /api/checkin
func (h *CheckInHandler) CreateCheckIn(c *gin.Context) {
	var req dto.CreateCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isBodyTooLarge(err) {
			response.PayloadTooLarge(c)
			return
		}
		response.BadRequest(c, service.ErrCheckInFieldMissing.Error())
		return
	}

	record, err := h.checkInSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleCheckInError(c, err)
		return
	}

	response.Success(c, msgCheckInCreated, record)
}

// CheckInToday 以服务端当前时间打卡
// POST /api/checkin/today
func (h *CheckInHandler) CheckInToday(c *gin.Context) {
	var req dto.TodayCheckInRequest
	// 请求体可省略
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		if isBodyTooLarge(err) {
			response.PayloadTooLarge(c)
			return
		}
		response.BadRequest(c, "参数校验失败")
		return
	}

	record, err := h.checkInSvc.CheckInToday(c.Request.Context(), &req)
	if err != nil {
		h.handleCheckInError(c, err)
		return
	}

	response.Success(c, msgCheckInCreated, record)
}

// DeleteCheckIn 删除打卡记录
// DELETE /api/checkin?id=xxx
func (h *CheckInHandler) DeleteCheckIn(c *gin.Context) {
	var req dto.DeleteCheckInRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, service.ErrCheckInIDMissing.Error())
		return
	}

	if err := h.checkInSvc.Delete(c.Request.Context(), req.ID); err != nil {
		h.handleCheckInError(c, err)
		return
	}

	response.Success(c, msgCheckInDeleted, nil)
}

// GetStats 获取打卡统计
// GET /api/checkin/stats?today=YYYY-MM-DD
func (h *CheckInHandler) GetStats(c *gin.Context) {
	var req dto.StatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	summary, err := h.checkInSvc.Stats(c.Request.Context(), &req)
	if err != nil {
		h.handleCheckInError(c, err)
		return
	}

	response.OK(c, summary)
}

// GetCalendar 获取某月打卡日历
// GET /api/checkin/calendar?month=YYYY-MM
func (h *CheckInHandler) GetCalendar(c *gin.Context) {
	var req dto.CalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	cal, err := h.checkInSvc.Calendar(c.Request.Context(), &req)
	if err != nil {
		h.handleCheckInError(c, err)
		return
	}

	response.OK(c, cal)
}

// isBodyTooLarge 请求体读取被 BodyLimit 截断
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// handleCheckInError 统一处理打卡模块业务错误
func (h *CheckInHandler) handleCheckInError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCheckInFieldMissing):
		response.BadRequest(c, service.ErrCheckInFieldMissing.Error())
	case errors.Is(err, service.ErrCheckInInvalidDate):
		response.BadRequest(c, service.ErrCheckInInvalidDate.Error())
	case errors.Is(err, service.ErrCheckInInvalidMonth):
		response.BadRequest(c, service.ErrCheckInInvalidMonth.Error())
	case errors.Is(err, service.ErrCheckInIDMissing):
		response.BadRequest(c, service.ErrCheckInIDMissing.Error())
	case errors.Is(err, service.ErrCheckInDuplicateDate):
		response.BadRequest(c, service.ErrCheckInDuplicateDate.Error())
	case errors.Is(err, service.ErrCheckInNotFound):
		response.NotFound(c, service.ErrCheckInNotFound.Error())
	default:
		h.logger.Error("处理打卡请求出错", zap.String("path", c.FullPath()), zap.Error(err))
		response.InternalError(c)
	}
}
