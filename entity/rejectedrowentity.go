package entity

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// RejectedRowEntity keeps a lenient-mode rejection for later inspection.
// Data holds the raw row as parsed, Reason is the validator verdict.
type RejectedRowEntity struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	JobID     int64           `gorm:"not null;index;column:job_id"`
	Data      json.RawMessage `gorm:"type:json"`
	Reason    string          `gorm:"type:varchar(32)"`
	Error     string          `gorm:"type:text"`
	SourceUrl string          `gorm:"column:source_url;type:text"`
	Resolved  bool            `gorm:"default:false"`
	CreatedAt int64           `gorm:"autoCreateTime:milli;column:created_at"`
	UpdatedAt int64           `gorm:"autoUpdateTime:milli;column:updated_at"`
}

func (RejectedRowEntity) TableName() string {
	return "rejected_rows"
}

func (c *RejectedRowEntity) BeforeUpdate(tx *gorm.DB) error {
	tx.Statement.SetColumn("updated_at", time.Now().UnixMilli())
	return nil
}
