package entity

import (
	"time"

	"gorm.io/gorm"
)

// UploadJobEntity tracks one event-triggered ingestion run end to end.
type UploadJobEntity struct {
	ID            int64      `gorm:"primaryKey;autoIncrement"`
	SourceUrl     string     `gorm:"column:source_url;type:text"`
	UserId        string     `gorm:"column:user_id;type:varchar(64);index"`
	Status        string     `gorm:"column:status;default:'pending'"` // pending, in_progress, success, failed
	StartedAt     *time.Time `gorm:"column:started_at"`
	FinishedAt    *time.Time `gorm:"column:finished_at"`
	ErrorMsg      *string    `gorm:"column:error_message"`
	RowsPersisted int        `gorm:"column:rows_persisted;default:0"`
	RowsRejected  int        `gorm:"column:rows_rejected;default:0"`
	CreatedAt     int64      `json:"created_at" gorm:"autoCreateTime:milli;column:created_at"`
	UpdatedAt     int64      `json:"updated_at" gorm:"autoUpdateTime:milli;column:updated_at"`
}

func (UploadJobEntity) TableName() string {
	return "upload_jobs"
}

func (c *UploadJobEntity) BeforeUpdate(tx *gorm.DB) error {
	tx.Statement.SetColumn("updated_at", time.Now().UnixMilli())
	return nil
}
