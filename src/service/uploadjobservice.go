package service

import (
	"encoding/json"
	"time"

	config "github.com/lgn-lvx3/pge-nrg-api/config/circuitbreaker"
	"github.com/lgn-lvx3/pge-nrg-api/config/log"
	"github.com/lgn-lvx3/pge-nrg-api/entity"
	"github.com/lgn-lvx3/pge-nrg-api/src/ingest"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UploadJobServiceImpl struct{}

// InitJob creates (or finds) the job record for a source URL.
func (j *UploadJobServiceImpl) InitJob(db *gorm.DB, sourceUrl string) (entity.UploadJobEntity, error) {
	job := entity.UploadJobEntity{
		SourceUrl: sourceUrl,
		Status:    "pending",
	}
	if err := db.FirstOrCreate(&job, entity.UploadJobEntity{SourceUrl: sourceUrl}).Error; err != nil {
		log.Logger.Error("Failed to record upload job", zap.String("url", sourceUrl), zap.Error(err))
		return entity.UploadJobEntity{}, err
	}
	return job, nil
}

// InProgress marks the job started and records the resolved owner.
func (j *UploadJobServiceImpl) InProgress(db *gorm.DB, job entity.UploadJobEntity, userId string) error {
	start := time.Now().UTC()
	return db.Model(&job).Updates(map[string]interface{}{
		"status":        "in_progress",
		"user_id":       userId,
		"started_at":    &start,
		"finished_at":   nil,
		"error_message": nil,
	}).Error
}

// Complete records the run outcome. Already-persisted batches stay
// committed on failure, so the counts matter either way.
func (j *UploadJobServiceImpl) Complete(db *gorm.DB, job entity.UploadJobEntity, report ingest.Report, runErr error) {
	finish := time.Now().UTC()

	updates := map[string]interface{}{
		"finished_at":    &finish,
		"rows_persisted": report.RowsPersisted,
		"rows_rejected":  report.RowsRejected,
	}
	if runErr != nil {
		updates["status"] = "failed"
		updates["error_message"] = runErr.Error()
		log.Logger.Error("Upload job failed", zap.String("url", job.SourceUrl), zap.String("report", report.String()), zap.Error(runErr))
	} else {
		updates["status"] = "success"
		log.Logger.Info("Upload job succeeded", zap.String("url", job.SourceUrl), zap.String("report", report.String()))
	}

	if dbErr := db.Model(&job).Updates(updates).Error; dbErr != nil {
		log.Logger.Error("Failed to update upload job status", zap.String("url", job.SourceUrl), zap.Error(dbErr))
	}
}

// StoreRejections persists lenient-mode rejects for later inspection.
func (j *UploadJobServiceImpl) StoreRejections(db *gorm.DB, job entity.UploadJobEntity, rejections []ingest.Rejection) error {
	if len(rejections) == 0 {
		return nil
	}

	records := make([]entity.RejectedRowEntity, 0, len(rejections))
	for _, rej := range rejections {
		data, err := json.Marshal(rej.Row)
		if err != nil {
			log.Logger.Warn("failed to marshal rejected row", zap.Error(err))
			continue
		}
		records = append(records, entity.RejectedRowEntity{
			JobID:     job.ID,
			Data:      data,
			Reason:    string(rej.Reason),
			Error:     rej.Error(),
			SourceUrl: job.SourceUrl,
		})
	}
	if len(records) == 0 {
		return nil
	}

	err := config.DBWithCircuitBreaker(db, func(tx *gorm.DB) error {
		return tx.CreateInBatches(records, 100).Error
	})
	if err != nil {
		return err
	}

	log.Logger.Info("Stored rejected rows", zap.Int("count", len(records)), zap.Int64("job", job.ID))
	return nil
}
