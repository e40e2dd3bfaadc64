package service

import (
	"strings"
	"time"

	"github.com/lgn-lvx3/pge-nrg-api/config/log"
	"github.com/lgn-lvx3/pge-nrg-api/entity"
	"github.com/lgn-lvx3/pge-nrg-api/src/ingest"
	"github.com/lgn-lvx3/pge-nrg-api/src/tools"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AlertServiceImpl struct{}

// CreateAlert stores a usage threshold for the caller. The owner email
// is denormalized onto the alert so the timer scan can mail without a
// user lookup.
func (a *AlertServiceImpl) CreateAlert(db *gorm.DB, owner ingest.Identity, threshold float64, channels []string) (entity.AlertEntity, error) {
	if len(channels) == 0 {
		channels = []string{entity.AlertChannelEmail}
	}
	alert := entity.AlertEntity{
		Id:        tools.NewUuid(),
		UserId:    owner.ID,
		UserEmail: owner.Email,
		Threshold: threshold,
		Channels:  strings.Join(channels, ","),
		Type:      entity.TypeAlert,
	}
	if err := db.Create(&alert).Error; err != nil {
		return entity.AlertEntity{}, err
	}
	return alert, nil
}

func (a *AlertServiceImpl) ListAlerts(db *gorm.DB, userId string) ([]entity.AlertEntity, error) {
	var alerts []entity.AlertEntity
	err := db.Where("user_id = ? AND type = ?", userId, entity.TypeAlert).Find(&alerts).Error
	return alerts, err
}

func (a *AlertServiceImpl) GetAlert(db *gorm.DB, id string) (entity.AlertEntity, error) {
	var alert entity.AlertEntity
	err := db.First(&alert, "id = ?", id).Error
	return alert, err
}

func (a *AlertServiceImpl) DeleteAlert(db *gorm.DB, id string) error {
	return db.Delete(&entity.AlertEntity{}, "id = ?", id).Error
}

// ScanAndNotify mails every user whose entries recorded in the lookback
// window exceed their threshold. Send failures are logged and skipped;
// the scan itself never fails a run over one bad address.
func (a *AlertServiceImpl) ScanAndNotify(db *gorm.DB, lookback time.Duration) error {
	since := time.Now().UTC().Add(-lookback)
	entries, err := IEntryService.RecentEntries(db, since)
	if err != nil {
		return err
	}

	var alerts []entity.AlertEntity
	if err := db.Where("type = ?", entity.TypeAlert).Find(&alerts).Error; err != nil {
		return err
	}

	byUser := make(map[string]entity.AlertEntity, len(alerts))
	for _, alert := range alerts {
		byUser[alert.UserId] = alert
	}

	for _, entry := range entries {
		alert, ok := byUser[entry.UserId]
		if !ok || entry.Usage <= alert.Threshold {
			continue
		}
		log.Logger.Info("alert threshold exceeded, sending email",
			zap.String("user", alert.UserId),
			zap.Float64("usage", entry.Usage),
			zap.Float64("threshold", alert.Threshold))
		if err := IMailService.SendThresholdAlert(alert, entry); err != nil {
			log.Logger.Error("alert email failed", zap.String("user", alert.UserId), zap.Error(err))
		}
	}
	return nil
}
