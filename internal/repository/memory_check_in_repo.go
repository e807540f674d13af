package repository

import (
	"context"
	"sync"

	"daily-checkin/internal/model"
	pkgerrors "daily-checkin/pkg/errors"
)

// memoryCheckInRepo 进程内切片存储，所有操作串行执行
type memoryCheckInRepo struct {
	mu      sync.Mutex
	records []model.CheckInRecord // 最新创建的在前
}

// NewMemoryCheckInRepo 创建内存版 CheckInRepository 实例
func NewMemoryCheckInRepo() CheckInRepository {
	return &memoryCheckInRepo{records: make([]model.CheckInRecord, 0)}
}

func (r *memoryCheckInRepo) List(_ context.Context) ([]model.CheckInRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.CheckInRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *memoryCheckInRepo) Create(_ context.Context, rec *model.CheckInRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].Date == rec.Date {
			return pkgerrors.ErrDuplicateKey
		}
	}

	r.records = append([]model.CheckInRecord{*rec}, r.records...)
	return nil
}

func (r *memoryCheckInRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return pkgerrors.ErrNotFound
}
