package api

import (
	"errors"
	"net/http"

	"github.com/lgn-lvx3/pge-nrg-api/config/mysql"
	"github.com/lgn-lvx3/pge-nrg-api/src/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetEnergyHistory lists the caller's entries, most recent first,
// optionally bounded by startDate/endDate query parameters.
func GetEnergyHistory(c *gin.Context) {
	user := CurrentIdentity(c)

	entries, err := service.IEntryService.History(mysql.GetDB(), user.ID, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{Message: "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Data: entries})
}

// GetEnergyEntry fetches a single entry by id.
func GetEnergyEntry(c *gin.Context) {
	entry, err := service.IEntryService.GetEntry(mysql.GetDB(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, APIResponse{Message: "Entry not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, APIResponse{Message: "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Data: entry})
}
