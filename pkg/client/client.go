// Package client 打卡服务的 HTTP 客户端，只调用列表、创建、删除三个接口
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"daily-checkin/internal/dto"
	"daily-checkin/internal/model"
	"daily-checkin/pkg/response"
)

// DefaultNote 备注为空时的默认文案
const DefaultNote = "完成今日打卡"

// APIError 服务端返回的非 2xx 响应
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("打卡服务返回 %d: %s", e.StatusCode, e.Message)
}

// Client 打卡服务客户端
type Client struct {
	baseURL     string
	httpClient  *http.Client
	now         func() time.Time
	defaultNote string
}

// Option 客户端可选项
type Option func(*Client)

// WithHTTPClient 指定底层 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock 指定本地时钟（决定提交的日期与时间）
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithDefaultNote 指定默认备注
func WithDefaultNote(note string) Option {
	return func(c *Client) { c.defaultNote = note }
}

// New 创建客户端，baseURL 形如 http://localhost:8080/api
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		now:         time.Now,
		defaultNote: DefaultNote,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List 获取全部打卡记录
func (c *Client) List(ctx context.Context) ([]dto.CheckInRecordResponse, error) {
	var out dto.CheckInListResponse
	if err := c.do(ctx, http.MethodGet, "/checkin", nil, &out); err != nil {
		return nil, err
	}
	return out.Records, nil
}

type actionResponse struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Record  *dto.CheckInRecordResponse `json:"record"`
}

// Create 提交一条打卡记录
func (c *Client) Create(ctx context.Context, req dto.CreateCheckInRequest) (*dto.CheckInRecordResponse, error) {
	var out actionResponse
	if err := c.do(ctx, http.MethodPost, "/checkin", req, &out); err != nil {
		return nil, err
	}
	return out.Record, nil
}

// CheckInToday 以本地时钟的日期与时间打卡，备注为空时使用默认文案
func (c *Client) CheckInToday(ctx context.Context, note string) (*dto.CheckInRecordResponse, error) {
	now := c.now()
	if strings.TrimSpace(note) == "" {
		note = c.defaultNote
	}
	return c.Create(ctx, dto.CreateCheckInRequest{
		Date: now.Format(model.DateLayout),
		Time: now.Format("15:04:05"),
		Note: note,
	})
}

// Delete 按 ID 删除打卡记录
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/checkin?id="+url.QueryEscape(id), nil, nil)
}

// Today 本地时钟下的今天
func (c *Client) Today() model.Date {
	return model.DateOf(c.now())
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("编码请求失败: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("构造请求失败: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("请求打卡服务失败: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取响应失败: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e response.ErrorResponse
		if json.Unmarshal(data, &e) != nil || e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("解析响应失败: %w", err)
	}
	return nil
}
