package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/lgn-lvx3/pge-nrg-api/config/mysql"
	"github.com/lgn-lvx3/pge-nrg-api/config/toml"
	"github.com/lgn-lvx3/pge-nrg-api/src/ingest"

	"github.com/gin-gonic/gin"
)

// UploadEnergyCsv ingests a CSV from a pre-signed URL for the caller.
// Direct uploads are strict: the first invalid row fails the request,
// though batches already written stay written (re-upload to finish).
func UploadEnergyCsv(c *gin.Context) {
	user := CurrentIdentity(c)

	preSignedUrl := c.Query("url")
	if preSignedUrl == "" {
		c.JSON(http.StatusBadRequest, APIResponse{
			Message: "Please provide a valid pre-signed URL in the 'url' query parameter.",
		})
		return
	}
	if !ingest.ValidSourceURL(preSignedUrl) {
		c.JSON(http.StatusBadRequest, APIResponse{
			Message: "Please provide a valid pre-signed URL.",
		})
		return
	}

	cfg := toml.GetConfig().Process
	pipe := ingest.New(ingest.NewStoreSink(mysql.GetDB()), ingest.Options{
		BatchSize:    cfg.Batchsize,
		OnRejection:  ingest.Abort,
		FetchTimeout: time.Duration(cfg.Fetchtimeout) * time.Second,
	})

	report, err := pipe.Run(c.Request.Context(), preSignedUrl, ingest.StaticOwner(user))
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{
			Message: fmt.Sprintf("Error processing the CSV file: %v", err),
			Data:    report,
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Message: fmt.Sprintf("CSV file downloaded from %s and processed successfully: %s.", preSignedUrl, report),
		Data:    report,
	})
}
