package service

import (
	"fmt"
	"time"

	"github.com/lgn-lvx3/pge-nrg-api/entity"
	"github.com/lgn-lvx3/pge-nrg-api/src/ingest"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EntryServiceImpl struct{}

// AddManualEntry validates and upserts a single hand-entered record. The
// date rule is the same yyyy-m-d shape the upload pipeline enforces, so
// a manual entry and an uploaded row for the same day share one id.
func (s *EntryServiceImpl) AddManualEntry(db *gorm.DB, owner ingest.Identity, dateStr string, usage float64) (entity.EnergyEntryEntity, error) {
	cand, rej := ingest.ValidateRow(ingest.RawRow{
		"date":       dateStr,
		"usage(kwh)": fmt.Sprintf("%v", usage),
	})
	if rej != nil {
		return entity.EnergyEntryEntity{}, rej
	}

	e := entity.EnergyEntryEntity{
		Id:          entity.EntryId(owner.ID, cand.EntryDate),
		UserId:      owner.ID,
		EntryDate:   cand.EntryDate,
		Usage:       cand.Usage,
		CreatedType: entity.CreatedTypeManual,
		Type:        entity.TypeEnergyEntry,
		CreatedAt:   time.Now().UTC(),
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"usage", "created_type", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return entity.EnergyEntryEntity{}, err
	}
	return e, nil
}

// History returns a user's entries, most recent first. startDate and
// endDate (yyyy-mm-dd) are optional and bound the entry date when both
// are present.
func (s *EntryServiceImpl) History(db *gorm.DB, userId, startDate, endDate string) ([]entity.EnergyEntryEntity, error) {
	q := db.Where("user_id = ? AND type = ?", userId, entity.TypeEnergyEntry)
	if startDate != "" && endDate != "" {
		q = q.Where("entry_date >= ? AND entry_date <= ?", startDate, endDate)
	}

	var entries []entity.EnergyEntryEntity
	if err := q.Order("entry_date DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// GetEntry fetches one entry by id.
func (s *EntryServiceImpl) GetEntry(db *gorm.DB, id string) (entity.EnergyEntryEntity, error) {
	var e entity.EnergyEntryEntity
	err := db.First(&e, "id = ?", id).Error
	return e, err
}

// RecentEntries returns entries recorded since the given instant,
// used by the alert scan.
func (s *EntryServiceImpl) RecentEntries(db *gorm.DB, since time.Time) ([]entity.EnergyEntryEntity, error) {
	var entries []entity.EnergyEntryEntity
	err := db.Where("type = ? AND created_at > ?", entity.TypeEnergyEntry, since).
		Order("entry_date DESC").
		Find(&entries).Error
	return entries, err
}
