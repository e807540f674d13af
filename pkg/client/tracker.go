package client

import (
	"context"
	"fmt"
	"sync"

	"daily-checkin/internal/model"
	"daily-checkin/internal/stats"
)

// Snapshot 一次完整拉取后的界面状态
type Snapshot struct {
	Records []model.CheckInRecord
	Stats   stats.Summary
}

// Tracker 维护客户端视角的打卡状态。
// 每次写操作成功后重新拉取完整列表并从头计算统计；
// 任何一步失败都保留上一次的快照。
type Tracker struct {
	client *Client

	mu       sync.Mutex
	snapshot Snapshot
}

// NewTracker 创建 Tracker
func NewTracker(c *Client) *Tracker {
	return &Tracker{client: c}
}

// Snapshot 返回当前快照
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot
}

// Refresh 拉取完整列表并重新计算统计
func (t *Tracker) Refresh(ctx context.Context) (Snapshot, error) {
	items, err := t.client.List(ctx)
	if err != nil {
		return t.Snapshot(), err
	}

	records := make([]model.CheckInRecord, 0, len(items))
	for _, item := range items {
		rec, err := item.ToModel()
		if err != nil {
			return t.Snapshot(), fmt.Errorf("记录 %s 日期无效: %w", item.ID, err)
		}
		records = append(records, rec)
	}

	snap := Snapshot{
		Records: records,
		Stats:   stats.Compute(stats.Dates(records), t.client.Today()),
	}

	t.mu.Lock()
	t.snapshot = snap
	t.mu.Unlock()
	return snap, nil
}

// Submit 今日打卡后刷新
func (t *Tracker) Submit(ctx context.Context, note string) (Snapshot, error) {
	if _, err := t.client.CheckInToday(ctx, note); err != nil {
		return t.Snapshot(), err
	}
	return t.Refresh(ctx)
}

// Remove 删除记录后刷新
func (t *Tracker) Remove(ctx context.Context, id string) (Snapshot, error) {
	if err := t.client.Delete(ctx, id); err != nil {
		return t.Snapshot(), err
	}
	return t.Refresh(ctx)
}

// Calendar 基于当前快照生成某月日历
func (t *Tracker) Calendar(month stats.Month) []stats.CalendarDay {
	snap := t.Snapshot()
	return stats.Calendar(snap.Records, month, t.client.Today())
}
