package entity

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	// CreatedType values, distinguishing how an entry reached the store.
	CreatedTypeManual = "manual"
	CreatedTypeUpload = "upload"

	// Type discriminator shared with the other record kinds in the store.
	TypeEnergyEntry = "energyEntry"
)

// EnergyEntryEntity is one day of usage for one user. The primary key is
// derived from (user, entry date), so re-uploading the same file upserts
// in place instead of duplicating.
type EnergyEntryEntity struct {
	Id          string    `json:"id" gorm:"column:id;type:varchar(80);primaryKey"`
	UserId      string    `json:"userId" gorm:"column:user_id;type:varchar(64);not null;index"`
	EntryDate   time.Time `json:"entryDate" gorm:"column:entry_date;type:date;not null;index"`
	Usage       float64   `json:"usage" gorm:"column:usage;type:decimal(18,6);not null"`
	CreatedType string    `json:"createdType" gorm:"column:created_type;type:varchar(10);not null"`
	Type        string    `json:"type" gorm:"column:type;type:varchar(20);not null;default:'energyEntry'"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt   int64     `json:"updated_at" gorm:"autoUpdateTime:milli;column:updated_at"`
}

func (EnergyEntryEntity) TableName() string {
	return "energy_entries"
}

func (c *EnergyEntryEntity) BeforeUpdate(tx *gorm.DB) error {
	tx.Statement.SetColumn("updated_at", time.Now().UnixMilli())
	return nil
}

// EntryId derives the deterministic primary key for a (user, date) pair.
// The date is normalized to YYYY-MM-DD so "2024-1-5" and "2024-01-05"
// produce the same id.
func EntryId(userId string, entryDate time.Time) string {
	return fmt.Sprintf("%s-%s", userId, entryDate.Format("2006-01-02"))
}
