package stats

import (
	"fmt"
	"time"

	"daily-checkin/internal/model"
)

// 日历格子状态
const (
	DayStatusChecked = "checked" // 已打卡
	DayStatusPending = "pending" // 今日待打卡
	DayStatusNone    = ""
)

// Month 年月
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth 解析 YYYY-MM
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("无效的月份 %q: %w", s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf 取日期所在月份
func MonthOf(d model.Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

// String 格式化为 YYYY-MM
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// CalendarDay 日历中的一天
type CalendarDay struct {
	Date     model.Date `json:"date"`
	Status   string     `json:"status,omitempty"`
	IsToday  bool       `json:"is_today"`
	RecordID string     `json:"record_id,omitempty"`
	Note     string     `json:"note,omitempty"`
}

// Calendar 生成指定月份每一天的打卡状态
func Calendar(records []model.CheckInRecord, month Month, today model.Date) []CalendarDay {
	byDate := make(map[model.Date]*model.CheckInRecord, len(records))
	for i := range records {
		byDate[records[i].Date] = &records[i]
	}

	first := model.NewDate(month.Year, month.Month, 1)
	days := make([]CalendarDay, 0, first.DaysInMonth())
	for d := first; d.SameMonth(first); d = d.AddDays(1) {
		day := CalendarDay{Date: d, IsToday: d == today}
		switch rec, ok := byDate[d]; {
		case ok:
			day.Status = DayStatusChecked
			day.RecordID = rec.ID
			day.Note = rec.Note
		case day.IsToday:
			day.Status = DayStatusPending
		}
		days = append(days, day)
	}
	return days
}
