package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout 日期的文本格式，仅在 API 与存储边界使用
const DateLayout = "2006-01-02"

// Date 日历日期（年、月、日），不含时间与时区
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate 构造日期，越界的月/日会按公历进位（如 6 月 31 日 → 7 月 1 日）
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf 取 t 在其自身时区下的日历日期
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate 解析 YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("无效的日期 %q: %w", s, err)
	}
	return DateOf(t), nil
}

// String 格式化为 YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero 是否为零值
func (d Date) IsZero() bool {
	return d == Date{}
}

// AddDays 返回 n 天后的日期（n 可为负）
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// Compare 比较两个日期：d 早于 o 返回 -1，相等返回 0，晚于返回 1
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// Before d 是否早于 o
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After d 是否晚于 o
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// SameMonth 是否与 o 处于同一年同一月
func (d Date) SameMonth(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month
}

// DaysInMonth 当月总天数
func (d Date) DaysInMonth() int {
	return time.Date(d.Year, d.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Time 当天 00:00 (UTC)
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// ── JSON ──

// MarshalJSON 序列化为 "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON 从 "YYYY-MM-DD" 反序列化
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ── GORM Scanner/Valuer ──

// Scan 将数据库中的 TEXT 解析为 Date
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	case time.Time:
		*d = DateOf(v)
		return nil
	default:
		return fmt.Errorf("Date.Scan: unsupported type %T", src)
	}
}

// Value 以 YYYY-MM-DD 文本写入数据库
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}
