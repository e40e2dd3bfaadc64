package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lgn-lvx3/pge-nrg-api/config/mysql"
	"github.com/lgn-lvx3/pge-nrg-api/src/service"

	"github.com/gin-gonic/gin"
)

// GetRecommendations analyzes a user's consumption history and returns
// model-generated efficiency recommendations.
func GetRecommendations(c *gin.Context) {
	userId := c.Param("userId")
	if userId == "" {
		c.JSON(http.StatusBadRequest, APIResponse{Message: "User ID is required"})
		return
	}

	rec, err := service.IRecommendService.ForUser(c.Request.Context(), mysql.GetDB(), userId)
	if err != nil {
		if errors.Is(err, service.ErrNoEntries) {
			c.JSON(http.StatusNotFound, APIResponse{Message: "No energy entries found for this user"})
			return
		}
		c.JSON(http.StatusInternalServerError, APIResponse{
			Message: fmt.Sprintf("Error generating recommendations: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Message: "Recommendations generated successfully",
		Data:    rec,
	})
}
