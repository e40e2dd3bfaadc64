package api

import (
	"net/http"

	"github.com/lgn-lvx3/pge-nrg-api/config/log"
	redisUtil "github.com/lgn-lvx3/pge-nrg-api/config/redis"
	"github.com/lgn-lvx3/pge-nrg-api/config/worker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	eventTypeValidation  = "Microsoft.EventGrid.SubscriptionValidationEvent"
	eventTypeBlobCreated = "Microsoft.Storage.BlobCreated"

	// Event deliveries are at-least-once; remember seen ids for a day.
	eventDedupeTTL = 24 * 3600
)

type gridEvent struct {
	Id        string        `json:"id"`
	EventType string        `json:"eventType"`
	Subject   string        `json:"subject"`
	Data      gridEventData `json:"data"`
}

type gridEventData struct {
	Url            string `json:"url"`
	ValidationCode string `json:"validationCode"`
}

// StorageEvents is the webhook the storage account posts blob events to.
// There is no caller to answer on this path; ingestion failures surface
// only through logs and the upload_jobs table.
func StorageEvents(c *gin.Context) {
	var events []gridEvent
	if err := c.ShouldBindJSON(&events); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{Message: "Invalid event payload."})
		return
	}

	for _, ev := range events {
		switch ev.EventType {
		case eventTypeValidation:
			// subscription handshake: echo the code back
			c.JSON(http.StatusOK, gin.H{"validationResponse": ev.Data.ValidationCode})
			return

		case eventTypeBlobCreated:
			if ev.Data.Url == "" {
				log.Logger.Warn("blob created event without url", zap.String("subject", ev.Subject))
				continue
			}
			if rc, err := redisUtil.GetRedisClient(); err == nil {
				if !rc.RSetNX("event:"+ev.Id, 1, eventDedupeTTL) {
					log.Logger.Info("duplicate storage event, skipping", zap.String("id", ev.Id), zap.String("url", ev.Data.Url))
					continue
				}
			}
			log.Logger.Info("blob created, enqueueing ingestion",
				zap.String("id", ev.Id),
				zap.String("subject", ev.Subject),
				zap.String("url", ev.Data.Url))
			worker.EnqueueUpload(ev.Data.Url)

		default:
			log.Logger.Debug("ignoring event", zap.String("type", ev.EventType))
		}
	}

	c.Status(http.StatusAccepted)
}
