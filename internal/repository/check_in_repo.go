package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"daily-checkin/internal/model"
	pkgerrors "daily-checkin/pkg/errors"
)

// CheckInRepository 打卡记录数据访问接口
// 实现必须保证 Create 的"查重 + 插入"原子完成
type CheckInRepository interface {
	// List 返回全部记录，最新创建的在前
	List(ctx context.Context) ([]model.CheckInRecord, error)
	// Create 插入记录；同一日期已存在时返回 pkgerrors.ErrDuplicateKey
	Create(ctx context.Context, rec *model.CheckInRecord) error
	// Delete 按 ID 删除；不存在时返回 pkgerrors.ErrNotFound
	Delete(ctx context.Context, id string) error
}

type checkInRepo struct {
	db *gorm.DB
}

// NewCheckInRepo 创建基于 GORM 的 CheckInRepository 实例
func NewCheckInRepo(db *gorm.DB) CheckInRepository {
	return &checkInRepo{db: db}
}

func (r *checkInRepo) List(ctx context.Context) ([]model.CheckInRecord, error) {
	records := make([]model.CheckInRecord, 0)
	err := r.db.WithContext(ctx).
		Order("rowid DESC").
		Find(&records).Error
	return records, err
}

func (r *checkInRepo) Create(ctx context.Context, rec *model.CheckInRecord) error {
	err := r.db.WithContext(ctx).Create(rec).Error
	if isUniqueViolation(err) {
		return pkgerrors.ErrDuplicateKey
	}
	return err
}

func (r *checkInRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CheckInRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

// isUniqueViolation 识别唯一索引冲突（TranslateError 未生效时按 SQLite 错误文本兜底）
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
