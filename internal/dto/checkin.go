package dto

import (
	"daily-checkin/internal/model"
	"daily-checkin/internal/stats"
)

// ── 打卡模块 DTO ──

// CreateCheckInRequest 创建打卡记录请求
// 字段是否为空由 Service 层校验，以便统一返回"缺少必要的打卡信息"
type CreateCheckInRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
	Note string `json:"note"`
}

// TodayCheckInRequest 以服务端时钟打卡，备注可为空
type TodayCheckInRequest struct {
	Note string `json:"note"`
}

// DeleteCheckInRequest 删除打卡记录参数
type DeleteCheckInRequest struct {
	ID string `form:"id"`
}

// StatsRequest 统计查询参数
type StatsRequest struct {
	Today string `form:"today"` // 可选，YYYY-MM-DD；为空取服务端当天
}

// CalendarRequest 日历查询参数
type CalendarRequest struct {
	Month string `form:"month"` // 可选，YYYY-MM；为空取当月
	Today string `form:"today"`
}

// CheckInRecordResponse 打卡记录响应
type CheckInRecordResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Time string `json:"time"`
	Note string `json:"note"`
}

// CheckInListResponse 打卡记录列表响应
type CheckInListResponse struct {
	Records []CheckInRecordResponse `json:"records"`
}

// CheckInStatsResponse 打卡统计响应
type CheckInStatsResponse = stats.Summary

// CalendarResponse 打卡日历响应
type CalendarResponse struct {
	Month string              `json:"month"`
	Days  []stats.CalendarDay `json:"days"`
}

// ToCheckInRecordResponse 模型转响应
func ToCheckInRecordResponse(rec *model.CheckInRecord) CheckInRecordResponse {
	return CheckInRecordResponse{
		ID:   rec.ID,
		Date: rec.Date.String(),
		Time: rec.Time,
		Note: rec.Note,
	}
}

// ToModel 响应转模型（客户端侧重新计算统计时使用）
func (r CheckInRecordResponse) ToModel() (model.CheckInRecord, error) {
	date, err := model.ParseDate(r.Date)
	if err != nil {
		return model.CheckInRecord{}, err
	}
	return model.CheckInRecord{ID: r.ID, Date: date, Time: r.Time, Note: r.Note}, nil
}
