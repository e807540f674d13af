package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"daily-checkin/config"
	"daily-checkin/internal/model"
	"daily-checkin/internal/repository"
	"daily-checkin/internal/stats"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// 导出文件 MIME 类型
const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ICSContentType  = "text/calendar; charset=utf-8"
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出全部打卡记录为 Excel (.xlsx)，没有记录时仍输出表头
//   - Sheet "打卡记录"：按日期倒序，列为 日期 / 时间 / 备注
//   - Sheet "打卡统计"：导出时刻的连续天数、本月打卡、打卡率等
//   - 日历订阅 (.ics)：每条记录一个全天 VEVENT，UID 取记录 ID
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportCheckIns 导出打卡记录为 Excel
	ExportCheckIns(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportCalendar 导出打卡记录为 iCalendar
	ExportCalendar(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	loc    *time.Location
	now    Clock
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.CheckInConfig, repo *repository.Repository, clock Clock, logger *zap.Logger) ExportService {
	loc, err := cfg.Location()
	if err != nil {
		loc = time.Local
	}
	if clock == nil {
		clock = time.Now
	}
	return &exportService{repo: repo, loc: loc, now: clock, logger: logger}
}

const (
	recordsSheet = "打卡记录"
	statsSheet   = "打卡统计"
)

func (s *exportService) ExportCheckIns(ctx context.Context) (*bytes.Buffer, string, error) {
	// 1. 查询全部记录
	records, err := s.repo.CheckIn.List(ctx)
	if err != nil {
		s.logger.Error("查询打卡记录失败", zap.Error(err))
		return nil, "", err
	}

	sorted := make([]model.CheckInRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	today := model.DateOf(s.now().In(s.loc))
	summary := stats.Compute(stats.Dates(records), today)

	// 2. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(recordsSheet)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")
	if _, err := f.NewSheet(statsSheet); err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 2.1 打卡记录
	f.SetColWidth(recordsSheet, "A", "A", 14)
	f.SetColWidth(recordsSheet, "B", "B", 12)
	f.SetColWidth(recordsSheet, "C", "C", 48)

	f.SetCellValue(recordsSheet, cell("A", 1), "日期")
	f.SetCellValue(recordsSheet, cell("B", 1), "时间")
	f.SetCellValue(recordsSheet, cell("C", 1), "备注")
	f.SetCellStyle(recordsSheet, "A1", "C1", headerStyle)

	for i, rec := range sorted {
		row := i + 2
		f.SetCellValue(recordsSheet, cell("A", row), rec.Date.String())
		f.SetCellValue(recordsSheet, cell("B", row), rec.Time)
		f.SetCellValue(recordsSheet, cell("C", row), rec.Note)
	}

	// 2.2 打卡统计
	todayStatus := "未打卡"
	if summary.TodayCheckedIn {
		todayStatus = "已打卡"
	}
	statRows := [][2]interface{}{
		{"统计日期", summary.Today.String()},
		{"连续打卡（天）", summary.Streak},
		{"本月打卡（天）", summary.MonthlyCount},
		{"本月打卡率", fmt.Sprintf("%d%%", summary.MonthlyRate)},
		{"总打卡次数", summary.Total},
		{"今日状态", todayStatus},
	}
	f.SetColWidth(statsSheet, "A", "A", 18)
	f.SetColWidth(statsSheet, "B", "B", 16)
	f.SetCellValue(statsSheet, cell("A", 1), "指标")
	f.SetCellValue(statsSheet, cell("B", 1), "数值")
	f.SetCellStyle(statsSheet, "A1", "B1", headerStyle)
	for i, kv := range statRows {
		f.SetCellValue(statsSheet, cell("A", i+2), kv[0])
		f.SetCellValue(statsSheet, cell("B", i+2), kv[1])
	}

	// 3. 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, exportFilename(today, "xlsx"), nil
}

// ────────────────────── ExportCalendar ──────────────────────

const icsUIDDomain = "daily-checkin"

func (s *exportService) ExportCalendar(ctx context.Context) (*bytes.Buffer, string, error) {
	records, err := s.repo.CheckIn.List(ctx)
	if err != nil {
		s.logger.Error("查询打卡记录失败", zap.Error(err))
		return nil, "", err
	}

	now := s.now().In(s.loc)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//daily-checkin//打卡记录//ZH")
	cal.SetName(recordsSheet)

	for _, rec := range records {
		evt := cal.AddEvent(rec.ID + "@" + icsUIDDomain)
		evt.SetDtStampTime(now.UTC())
		evt.SetAllDayStartAt(rec.Date.Time())
		evt.SetAllDayEndAt(rec.Date.AddDays(1).Time())
		evt.SetSummary("已打卡：" + rec.Note)
		evt.SetDescription("打卡时间 " + rec.Time)
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, exportFilename(model.DateOf(now), "ics"), nil
}

// ── 辅助函数 ──

func exportFilename(day model.Date, ext string) string {
	return fmt.Sprintf("打卡记录_%04d%02d%02d.%s", day.Year, int(day.Month), day.Day, ext)
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
