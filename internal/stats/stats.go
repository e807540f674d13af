// Package stats 由打卡日期集合推导连续天数与月度统计。
//
// 所有函数都是纯函数："今天"由调用方显式传入，不读取系统时钟。
package stats

import (
	"math"
	"sort"

	"daily-checkin/internal/model"
)

// 月度打卡率分级（与进度条状态对应）
const (
	RateStatusSuccess   = "success"   // ≥ 80%
	RateStatusActive    = "active"    // ≥ 50%
	RateStatusException = "exception" // < 50%
)

// Summary 一次完整计算的结果
type Summary struct {
	Today          model.Date `json:"today"`
	Streak         int        `json:"streak"`
	MonthlyCount   int        `json:"monthly_count"`
	MonthlyRate    int        `json:"monthly_rate"`
	RateStatus     string     `json:"rate_status"`
	Total          int        `json:"total"`
	TodayCheckedIn bool       `json:"today_checked_in"`
}

// Compute 基于全部打卡日期重新计算统计，不保留任何增量状态
func Compute(dates []model.Date, today model.Date) Summary {
	monthly := MonthlyCount(dates, today)
	rate := MonthlyRate(monthly, today)
	return Summary{
		Today:          today,
		Streak:         CurrentStreak(dates, today),
		MonthlyCount:   monthly,
		MonthlyRate:    rate,
		RateStatus:     RateStatus(rate),
		Total:          len(dates),
		TodayCheckedIn: CheckedInOn(dates, today),
	}
}

// Dates 提取记录中的日期
func Dates(records []model.CheckInRecord) []model.Date {
	dates := make([]model.Date, 0, len(records))
	for i := range records {
		dates = append(dates, records[i].Date)
	}
	return dates
}

// CurrentStreak 从最近一次打卡向前数连续打卡天数。
// 最近一次打卡必须是今天或昨天，否则连续记录已中断，返回 0。
func CurrentStreak(dates []model.Date, today model.Date) int {
	if len(dates) == 0 {
		return 0
	}

	sorted := make([]model.Date, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].After(sorted[j]) })

	last := sorted[0]
	if last != today && last != today.AddDays(-1) {
		return 0
	}

	streak := 1
	anchor := last
	for _, d := range sorted[1:] {
		if d == anchor {
			continue
		}
		if d != anchor.AddDays(-1) {
			break
		}
		streak++
		anchor = d
	}
	return streak
}

// MonthlyCount 统计与 today 同年同月的打卡数
func MonthlyCount(dates []model.Date, today model.Date) int {
	n := 0
	for _, d := range dates {
		if d.SameMonth(today) {
			n++
		}
	}
	return n
}

// MonthlyRate 本月打卡率（整数百分比），分母为本月已过去的天数
func MonthlyRate(monthlyCount int, today model.Date) int {
	elapsed := today.Day
	if dim := today.DaysInMonth(); elapsed > dim {
		elapsed = dim
	}
	if elapsed <= 0 {
		return 0
	}
	return int(math.Round(float64(monthlyCount) / float64(elapsed) * 100))
}

// RateStatus 打卡率分级
func RateStatus(rate int) string {
	switch {
	case rate >= 80:
		return RateStatusSuccess
	case rate >= 50:
		return RateStatusActive
	default:
		return RateStatusException
	}
}

// CheckedInOn 指定日期是否已打卡
func CheckedInOn(dates []model.Date, day model.Date) bool {
	for _, d := range dates {
		if d == day {
			return true
		}
	}
	return false
}
