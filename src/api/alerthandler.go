package api

import (
	"errors"
	"net/http"

	"github.com/lgn-lvx3/pge-nrg-api/config/mysql"
	"github.com/lgn-lvx3/pge-nrg-api/src/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type alertBody struct {
	Threshold *float64 `json:"threshold"`
	Channels  []string `json:"channels"`
}

// ListAlerts returns the caller's alerts.
func ListAlerts(c *gin.Context) {
	user := CurrentIdentity(c)
	alerts, err := service.IAlertService.ListAlerts(mysql.GetDB(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{Message: "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Data: alerts})
}

// GetAlert returns one alert by id.
func GetAlert(c *gin.Context) {
	alert, err := service.IAlertService.GetAlert(mysql.GetDB(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, APIResponse{Message: "Alert not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, APIResponse{Message: "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Data: alert})
}

// CreateAlert stores a usage threshold for the caller.
func CreateAlert(c *gin.Context) {
	user := CurrentIdentity(c)

	var body alertBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Threshold == nil {
		c.JSON(http.StatusBadRequest, APIResponse{Message: "Threshold is required."})
		return
	}

	alert, err := service.IAlertService.CreateAlert(mysql.GetDB(), user, *body.Threshold, body.Channels)
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{Message: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Message: "Alert added to database.",
		Data:    alert,
	})
}

// DeleteAlert removes an alert by id.
func DeleteAlert(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, APIResponse{Message: "Alert ID is required."})
		return
	}
	if err := service.IAlertService.DeleteAlert(mysql.GetDB(), id); err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{Message: "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Message: "Successfully deleted alert."})
}
