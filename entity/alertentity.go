package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	AlertChannelEmail = "email"
	AlertChannelSms   = "sms"

	TypeAlert = "alert"
)

// AlertEntity is a per-user usage threshold. Channels is a comma separated
// list of delivery channels, defaulting to email.
type AlertEntity struct {
	Id        string  `json:"id" gorm:"column:id;type:char(36);primaryKey"`
	UserId    string  `json:"userId" gorm:"column:user_id;type:varchar(64);not null;index"`
	UserEmail string  `json:"userEmail" gorm:"column:user_email;type:varchar(255)"`
	Threshold float64 `json:"threshold" gorm:"column:threshold;type:decimal(18,6);not null"`
	Channels  string  `json:"channels" gorm:"column:channels;type:varchar(64);default:'email'"`
	Type      string  `json:"type" gorm:"column:type;type:varchar(20);not null;default:'alert'"`
	CreatedAt int64   `json:"created_at" gorm:"autoCreateTime:milli;column:created_at"`
	UpdatedAt int64   `json:"updated_at" gorm:"autoUpdateTime:milli;column:updated_at"`
}

func (AlertEntity) TableName() string {
	return "alerts"
}

func (c *AlertEntity) BeforeUpdate(tx *gorm.DB) error {
	tx.Statement.SetColumn("updated_at", time.Now().UnixMilli())
	return nil
}
