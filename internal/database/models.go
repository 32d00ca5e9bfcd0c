package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// KVEntry 是扁平的键值记录，整份简历以 JSON 形式存放在 Value 中。
type KVEntry struct {
	Key       string         `gorm:"primaryKey;size:191"`
	Value     datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

// TableName pins the table name used by the key-value store.
func (KVEntry) TableName() string {
	return "kv_entries"
}

// Export 状态常量。
const (
	ExportStatusQueued    = "queued"
	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)

// Export 记录一次异步 PDF 导出任务及其产物位置。
type Export struct {
	gorm.Model
	SessionID string `gorm:"index;size:64"`
	FileName  string `gorm:"size:255"`
	ObjectKey string `gorm:"size:512"`
	Status    string `gorm:"size:32"`
	Error     string `gorm:"size:512"`
}
