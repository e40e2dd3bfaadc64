package ingest

import (
	"context"
	"time"

	config "github.com/lgn-lvx3/pge-nrg-api/config/circuitbreaker"
	"github.com/lgn-lvx3/pge-nrg-api/config/log"
	"github.com/lgn-lvx3/pge-nrg-api/entity"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// storeOpCap is the store's atomic-operation ceiling per bulk call.
// Batches bigger than this are subdivided transparently.
const storeOpCap = 100

// BatchWriter drains one batch into the record store. Implementations
// must be idempotent per record id so a failed run can simply be re-run.
type BatchWriter interface {
	Write(ctx context.Context, batch []entity.EnergyEntryEntity) error
}

// StoreSink writes batches through gorm with an upsert on the primary
// key, so same-day resubmissions overwrite instead of duplicating.
type StoreSink struct {
	db      *gorm.DB
	opCap   int
	timeout time.Duration
}

func NewStoreSink(db *gorm.DB) *StoreSink {
	return &StoreSink{
		db:      db,
		opCap:   storeOpCap,
		timeout: 30 * time.Second,
	}
}

// Write upserts every record in batch, in order, one sub-batch call at a
// time. A sub-batch failure stops the drain and is reported with the ids
// of the records it covered; sub-batches already applied stay applied and
// are not rolled back. There is no automatic retry.
func (s *StoreSink) Write(ctx context.Context, batch []entity.EnergyEntryEntity) error {
	for _, chunk := range SplitBatch(batch, s.opCap) {
		chunk := chunk
		wctx, cancel := context.WithTimeout(ctx, s.timeout)
		db := s.db.WithContext(wctx)
		err := config.DBWithCircuitBreaker(db, func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"usage", "entry_date", "created_type", "updated_at"}),
			}).Create(&chunk).Error
		})
		cancel()
		if err != nil {
			log.Logger.Error("bulk upsert failed", zap.Int("rows", len(chunk)), zap.Error(err))
			return &PersistError{Ids: recordIds(chunk), Err: err}
		}
	}
	return nil
}

// SplitBatch slices batch into chunks of at most size records, keeping
// order. ceil(len(batch)/size) chunks come back, the last one possibly
// short.
func SplitBatch(batch []entity.EnergyEntryEntity, size int) [][]entity.EnergyEntryEntity {
	if len(batch) == 0 {
		return nil
	}
	chunks := make([][]entity.EnergyEntryEntity, 0, (len(batch)+size-1)/size)
	for start := 0; start < len(batch); start += size {
		end := start + size
		if end > len(batch) {
			end = len(batch)
		}
		chunks = append(chunks, batch[start:end])
	}
	return chunks
}

func recordIds(batch []entity.EnergyEntryEntity) []string {
	ids := make([]string, len(batch))
	for i, rec := range batch {
		ids[i] = rec.Id
	}
	return ids
}
