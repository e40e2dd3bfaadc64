package worker

import (
	"context"
	"time"

	"github.com/lgn-lvx3/pge-nrg-api/config/log"
	"github.com/lgn-lvx3/pge-nrg-api/config/mysql"
	"github.com/lgn-lvx3/pge-nrg-api/config/toml"
	"github.com/lgn-lvx3/pge-nrg-api/src/ingest"
	"github.com/lgn-lvx3/pge-nrg-api/src/service"

	"go.uber.org/zap"
)

// UploadJob is one storage-created object waiting for ingestion.
type UploadJob struct {
	Url string
}

// jobQueue holds uploads to process
var jobQueue chan UploadJob

// StartWorkerPool launches N workers to ingest uploaded files
// concurrently. Runs for different files share no state; the store
// tolerates concurrent idempotent upserts across runs.
func StartWorkerPool(numWorkers, queueSize int) {
	jobQueue = make(chan UploadJob, queueSize)

	for i := 0; i < numWorkers; i++ {
		go worker(i)
	}

	log.Logger.Info("Worker pool started", zap.Int("numWorkers", numWorkers))
}

// worker picks jobs from the queue and runs the lenient pipeline on them
func worker(id int) {
	log.Logger.Info("Worker started", zap.Int("id", id))
	db := mysql.GetDB()
	cfg := toml.GetConfig().Process

	for job := range jobQueue {
		log.Logger.Info("Picked upload from queue", zap.Int("worker", id), zap.String("url", job.Url))

		jobRecord, err := service.IUploadJobService.InitJob(db, job.Url)
		if err != nil {
			log.Logger.Error("Failed to create job record, skipping", zap.String("url", job.Url), zap.Error(err))
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)

		// Resolve the owner from blob metadata before any parsing; with
		// no live caller on this path the userid tag is the only link
		// back to a user.
		owner, err := ingest.BlobMetadataOwner(job.Url)(ctx)
		if err != nil {
			cancel()
			log.Logger.Error("Owner resolution failed, not ingesting", zap.String("url", job.Url), zap.Error(err))
			service.IUploadJobService.Complete(db, jobRecord, ingest.Report{}, err)
			continue
		}

		if err := service.IUploadJobService.InProgress(db, jobRecord, owner.ID); err != nil {
			cancel()
			log.Logger.Error("Failed to update job to in_progress, skipping", zap.String("url", job.Url), zap.Error(err))
			continue
		}

		// Storage-event uploads are lenient: a bad row is logged and
		// skipped, the rest of the file still lands.
		pipe := ingest.New(ingest.NewStoreSink(db), ingest.Options{
			BatchSize:    cfg.Batchsize,
			OnRejection:  ingest.Skip,
			FetchTimeout: time.Duration(cfg.Fetchtimeout) * time.Second,
		})
		report, runErr := pipe.Run(ctx, job.Url, ingest.StaticOwner(owner))
		cancel()

		if err := service.IUploadJobService.StoreRejections(db, jobRecord, report.Rejections); err != nil {
			log.Logger.Error("storing rejected rows failed", zap.Error(err))
		}
		service.IUploadJobService.Complete(db, jobRecord, report, runErr)
	}
}

// EnqueueUpload adds an uploaded object to the processing queue.
func EnqueueUpload(url string) {
	select {
	case jobQueue <- UploadJob{Url: url}:
		log.Logger.Info("Upload enqueued", zap.String("url", url))
	default:
		log.Logger.Warn("Job queue full, cannot enqueue upload", zap.String("url", url))
	}
}
