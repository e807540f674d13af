package model

// CheckInRecord 打卡记录表，对应 check_in_records
// 创建后不可修改，只能整条删除
type CheckInRecord struct {
	ID   string `gorm:"type:text;primaryKey"                                     json:"id"`
	Date Date   `gorm:"type:text;not null;uniqueIndex:idx_check_in_records_date" json:"date"`
	Time string `gorm:"type:text;not null"                                       json:"time"`
	Note string `gorm:"type:text;not null"                                       json:"note"`
}

// TableName 指定表名
func (CheckInRecord) TableName() string { return "check_in_records" }
