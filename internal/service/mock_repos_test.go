package service

import (
	"context"
	"errors"

	"daily-checkin/internal/model"
	pkgerrors "daily-checkin/pkg/errors"
)

// ── Mock CheckInRepository ──

type mockCheckInRepo struct {
	records []model.CheckInRecord // 最新创建的在前

	listErr   error
	createErr error
	deleteErr error
}

func newMockCheckInRepo() *mockCheckInRepo {
	return &mockCheckInRepo{}
}

func (m *mockCheckInRepo) List(_ context.Context) ([]model.CheckInRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.CheckInRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *mockCheckInRepo) Create(_ context.Context, rec *model.CheckInRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, r := range m.records {
		if r.Date == rec.Date {
			return pkgerrors.ErrDuplicateKey
		}
	}
	m.records = append([]model.CheckInRecord{*rec}, m.records...)
	return nil
}

func (m *mockCheckInRepo) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, r := range m.records {
		if r.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return pkgerrors.ErrNotFound
}

// seed 直接写入记录，不经过 Service 校验
func (m *mockCheckInRepo) seed(id, date string) {
	d, err := model.ParseDate(date)
	if err != nil {
		panic(err)
	}
	m.records = append([]model.CheckInRecord{{ID: id, Date: d, Time: "08:00:00", Note: "seed"}}, m.records...)
}

var errDBDown = errors.New("database is down")
