package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	CheckIn CheckInRepository
}

// NewRepository 创建基于 SQLite 的 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		CheckIn: NewCheckInRepo(db),
	}
}

// NewMemoryRepository 创建纯内存 Repository 聚合
func NewMemoryRepository() *Repository {
	return &Repository{
		CheckIn: NewMemoryCheckInRepo(),
	}
}
