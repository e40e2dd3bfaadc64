package api

import (
	"errors"
	"net/http"

	"github.com/lgn-lvx3/pge-nrg-api/config/mysql"
	"github.com/lgn-lvx3/pge-nrg-api/src/ingest"
	"github.com/lgn-lvx3/pge-nrg-api/src/service"

	"github.com/gin-gonic/gin"
)

type energyInputBody struct {
	Date  string   `json:"date"`
	Usage *float64 `json:"usage"`
}

// AddEnergyInput records one manually entered day of usage.
func AddEnergyInput(c *gin.Context) {
	user := CurrentIdentity(c)

	var body energyInputBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Date == "" || body.Usage == nil {
		c.JSON(http.StatusBadRequest, APIResponse{Message: "Date and usage are required."})
		return
	}

	entry, err := service.IEntryService.AddManualEntry(mysql.GetDB(), user, body.Date, *body.Usage)
	if err != nil {
		var rej *ingest.Rejection
		if errors.As(err, &rej) {
			switch rej.Reason {
			case ingest.MissingUsage, ingest.InvalidUsageValue:
				c.JSON(http.StatusBadRequest, APIResponse{Message: "Usage is not a valid number."})
			default:
				c.JSON(http.StatusBadRequest, APIResponse{Message: "Date is not a valid date."})
			}
			return
		}
		c.JSON(http.StatusInternalServerError, APIResponse{Message: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Message: "Energy entry added to database.",
		Data:    entry,
	})
}
