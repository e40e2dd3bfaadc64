package api

import (
	"net/http"
	"time"

	"github.com/lgn-lvx3/pge-nrg-api/src/service"

	"github.com/gin-gonic/gin"
)

type tokenBody struct {
	Filename string `json:"filename"`
}

// GenerateUploadToken mints a signed upload URL for one file, valid for
// an hour.
func GenerateUploadToken(c *gin.Context) {
	var body tokenBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Filename == "" {
		c.JSON(http.StatusBadRequest, APIResponse{Message: "Filename is required"})
		return
	}

	uploadUrl, err := service.ISasService.GenerateUploadUrl(body.Filename, time.Now().Add(time.Hour))
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{Message: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Message: "Upload token generated.",
		Data:    uploadUrl,
	})
}
