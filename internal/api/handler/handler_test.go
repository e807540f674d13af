package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daily-checkin/internal/dto"
	"daily-checkin/internal/model"
	"daily-checkin/internal/service"
	"daily-checkin/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock CheckInService ──

type mockCheckInService struct {
	listResult     []dto.CheckInRecordResponse
	listErr        error
	createResult   *dto.CheckInRecordResponse
	createErr      error
	todayResult    *dto.CheckInRecordResponse
	todayErr       error
	deleteErr      error
	statsResult    *dto.CheckInStatsResponse
	statsErr       error
	calendarResult *dto.CalendarResponse
	calendarErr    error

	lastCreate *dto.CreateCheckInRequest
	lastToday  *dto.TodayCheckInRequest
	lastDelete string
	lastStats  *dto.StatsRequest
}

func (m *mockCheckInService) List(_ context.Context) ([]dto.CheckInRecordResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockCheckInService) Create(_ context.Context, req *dto.CreateCheckInRequest) (*dto.CheckInRecordResponse, error) {
	m.lastCreate = req
	return m.createResult, m.createErr
}
func (m *mockCheckInService) CheckInToday(_ context.Context, req *dto.TodayCheckInRequest) (*dto.CheckInRecordResponse, error) {
	m.lastToday = req
	return m.todayResult, m.todayErr
}
func (m *mockCheckInService) Delete(_ context.Context, id string) error {
	m.lastDelete = id
	return m.deleteErr
}
func (m *mockCheckInService) Stats(_ context.Context, req *dto.StatsRequest) (*dto.CheckInStatsResponse, error) {
	m.lastStats = req
	return m.statsResult, m.statsErr
}
func (m *mockCheckInService) Calendar(_ context.Context, _ *dto.CalendarRequest) (*dto.CalendarResponse, error) {
	return m.calendarResult, m.calendarErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportCheckIns(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

func (m *mockExportService) ExportCalendar(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Helpers
// ═══════════════════════════════════════════════════════════

func setupCheckInRouter(mock *mockCheckInService) *gin.Engine {
	h := NewCheckInHandler(mock, zap.NewNop())
	r := gin.New()
	r.GET("/checkin", h.ListCheckIns)
	r.POST("/checkin", h.CreateCheckIn)
	r.DELETE("/checkin", h.DeleteCheckIn)
	r.POST("/checkin/today", h.CheckInToday)
	r.GET("/checkin/stats", h.GetStats)
	r.GET("/checkin/calendar", h.GetCalendar)
	return r
}

func serve(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseError(w *httptest.ResponseRecorder) response.ErrorResponse {
	var resp response.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

type actionBody struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Record  *dto.CheckInRecordResponse `json:"record"`
}

func parseAction(w *httptest.ResponseRecorder) actionBody {
	var resp actionBody
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// CheckInHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCheckInHandler_List_Success(t *testing.T) {
	mock := &mockCheckInService{listResult: []dto.CheckInRecordResponse{
		{ID: "b", Date: "2024-06-02", Time: "09:00:00", Note: "读书"},
		{ID: "a", Date: "2024-06-01", Time: "08:00:00", Note: "晨跑"},
	}}
	w := serve(setupCheckInRouter(mock), "GET", "/checkin", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp dto.CheckInListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(resp.Records) != 2 || resp.Records[0].ID != "b" {
		t.Errorf("期望原样返回2条记录，实际=%+v", resp.Records)
	}
}

func TestCheckInHandler_List_EmptyIsArray(t *testing.T) {
	mock := &mockCheckInService{listResult: []dto.CheckInRecordResponse{}}
	w := serve(setupCheckInRouter(mock), "GET", "/checkin", nil)

	if w.Body.String() != `{"records":[]}` {
		t.Errorf("expected {\"records\":[]}, got %s", w.Body.String())
	}
}

func TestCheckInHandler_List_InternalError(t *testing.T) {
	mock := &mockCheckInService{listErr: errors.New("boom")}
	w := serve(setupCheckInRouter(mock), "GET", "/checkin", nil)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if msg := parseError(w).Error; msg != response.GenericErrorMessage {
		t.Errorf("expected generic message, got %q", msg)
	}
}

func TestCheckInHandler_Create_Success(t *testing.T) {
	mock := &mockCheckInService{createResult: &dto.CheckInRecordResponse{
		ID: "rec-1", Date: "2024-06-03", Time: "08:00:00", Note: "晨跑",
	}}
	w := serve(setupCheckInRouter(mock), "POST", "/checkin", jsonBody(dto.CreateCheckInRequest{
		Date: "2024-06-03", Time: "08:00:00", Note: "晨跑",
	}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := parseAction(w)
	if !resp.Success || resp.Message != "打卡成功" {
		t.Errorf("expected success/打卡成功, got %+v", resp)
	}
	if resp.Record == nil || resp.Record.ID != "rec-1" {
		t.Errorf("expected record rec-1, got %+v", resp.Record)
	}
	if mock.lastCreate == nil || mock.lastCreate.Note != "晨跑" {
		t.Errorf("请求未正确传给 Service: %+v", mock.lastCreate)
	}
}

func TestCheckInHandler_Create_BadJSON(t *testing.T) {
	mock := &mockCheckInService{}
	w := serve(setupCheckInRouter(mock), "POST", "/checkin", bytes.NewReader([]byte("invalid json")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if mock.lastCreate != nil {
		t.Error("非法 JSON 不应调用 Service")
	}
}

func TestCheckInHandler_Create_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"缺少字段", service.ErrCheckInFieldMissing, http.StatusBadRequest, "缺少必要的打卡信息"},
		{"日期非法", service.ErrCheckInInvalidDate, http.StatusBadRequest, "打卡日期格式无效"},
		{"重复打卡", service.ErrCheckInDuplicateDate, http.StatusBadRequest, "今天已经打卡了"},
		{"未知错误", errors.New("disk full"), http.StatusInternalServerError, response.GenericErrorMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockCheckInService{createErr: tc.err}
			w := serve(setupCheckInRouter(mock), "POST", "/checkin", jsonBody(dto.CreateCheckInRequest{
				Date: "2024-06-03", Time: "08:00:00", Note: "x",
			}))

			if w.Code != tc.status {
				t.Errorf("expected %d, got %d", tc.status, w.Code)
			}
			if msg := parseError(w).Error; msg != tc.msg {
				t.Errorf("expected %q, got %q", tc.msg, msg)
			}
		})
	}
}

func TestCheckInHandler_CheckInToday_EmptyBody(t *testing.T) {
	mock := &mockCheckInService{todayResult: &dto.CheckInRecordResponse{ID: "rec-1", Date: "2024-06-03"}}
	w := serve(setupCheckInRouter(mock), "POST", "/checkin/today", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.lastToday == nil || mock.lastToday.Note != "" {
		t.Errorf("空请求体应传空备注，实际=%+v", mock.lastToday)
	}
}

func TestCheckInHandler_CheckInToday_Duplicate(t *testing.T) {
	mock := &mockCheckInService{todayErr: service.ErrCheckInDuplicateDate}
	w := serve(setupCheckInRouter(mock), "POST", "/checkin/today", jsonBody(dto.TodayCheckInRequest{Note: "x"}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCheckInHandler_Delete_Success(t *testing.T) {
	mock := &mockCheckInService{}
	w := serve(setupCheckInRouter(mock), "DELETE", "/checkin?id=rec-1", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.lastDelete != "rec-1" {
		t.Errorf("expected id rec-1, got %q", mock.lastDelete)
	}
	resp := parseAction(w)
	if !resp.Success || resp.Message != "记录已删除" || resp.Record != nil {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestCheckInHandler_Delete_MissingID(t *testing.T) {
	mock := &mockCheckInService{deleteErr: service.ErrCheckInIDMissing}
	w := serve(setupCheckInRouter(mock), "DELETE", "/checkin", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if msg := parseError(w).Error; msg != "缺少记录ID" {
		t.Errorf("expected 缺少记录ID, got %q", msg)
	}
}

func TestCheckInHandler_Delete_NotFound(t *testing.T) {
	mock := &mockCheckInService{deleteErr: service.ErrCheckInNotFound}
	w := serve(setupCheckInRouter(mock), "DELETE", "/checkin?id=nope", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if msg := parseError(w).Error; msg != "找不到指定的记录" {
		t.Errorf("expected 找不到指定的记录, got %q", msg)
	}
}

func TestCheckInHandler_GetStats(t *testing.T) {
	mock := &mockCheckInService{statsResult: &dto.CheckInStatsResponse{
		Today: model.NewDate(2024, 6, 3), Streak: 3, MonthlyCount: 3, MonthlyRate: 100, RateStatus: "success", Total: 3, TodayCheckedIn: true,
	}}
	w := serve(setupCheckInRouter(mock), "GET", "/checkin/stats?today=2024-06-03", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.lastStats == nil || mock.lastStats.Today != "2024-06-03" {
		t.Errorf("today 参数未传递: %+v", mock.lastStats)
	}
	var body map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["streak"] != float64(3) || body["today"] != "2024-06-03" || body["today_checked_in"] != true {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestCheckInHandler_GetStats_InvalidToday(t *testing.T) {
	mock := &mockCheckInService{statsErr: service.ErrCheckInInvalidDate}
	w := serve(setupCheckInRouter(mock), "GET", "/checkin/stats?today=abc", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCheckInHandler_GetCalendar_InvalidMonth(t *testing.T) {
	mock := &mockCheckInService{calendarErr: service.ErrCheckInInvalidMonth}
	w := serve(setupCheckInRouter(mock), "GET", "/checkin/calendar?month=13", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportCheckIns_Success(t *testing.T) {
	mock := &mockExportService{buf: bytes.NewBufferString("xlsx-bytes"), filename: "打卡记录_20240603.xlsx"}
	h := NewExportHandler(mock)
	r := gin.New()
	r.GET("/checkin/export", h.ExportCheckIns)

	w := serve(r, "GET", "/checkin/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != service.XLSXContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !bytes.Contains([]byte(cd), []byte("attachment")) {
		t.Errorf("unexpected content disposition %q", cd)
	}
	if w.Body.String() != "xlsx-bytes" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestExportHandler_ExportCheckIns_Error(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportGenerateFail}
	h := NewExportHandler(mock)
	r := gin.New()
	r.GET("/checkin/export", h.ExportCheckIns)

	w := serve(r, "GET", "/checkin/export", nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestExportHandler_ExportCalendar_Success(t *testing.T) {
	mock := &mockExportService{buf: bytes.NewBufferString("BEGIN:VCALENDAR"), filename: "打卡记录_20240603.ics"}
	h := NewExportHandler(mock)
	r := gin.New()
	r.GET("/checkin/export.ics", h.ExportCalendar)

	w := serve(r, "GET", "/checkin/export.ics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != service.ICSContentType {
		t.Errorf("unexpected content type %q", ct)
	}
}

func TestCheckInHandler_Create_BodyTooLarge(t *testing.T) {
	mock := &mockCheckInService{}
	h := NewCheckInHandler(mock, zap.NewNop())
	r := gin.New()
	r.POST("/checkin", func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 8)
		c.Next()
	}, h.CreateCheckIn)

	w := serve(r, "POST", "/checkin", jsonBody(dto.CreateCheckInRequest{Date: "2024-06-03", Time: "08:00:00", Note: "晨跑"}))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
	if msg := parseError(w).Error; msg != response.MsgPayloadTooLarge {
		t.Errorf("expected %q, got %q", response.MsgPayloadTooLarge, msg)
	}
	if mock.lastCreate != nil {
		t.Error("超限请求不应调用 Service")
	}
}
