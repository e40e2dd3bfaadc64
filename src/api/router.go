package api

import (
	"github.com/lgn-lvx3/pge-nrg-api/src/tools"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every endpoint. Auth is required everywhere except the
// storage webhook (machine caller), the token mint and recommendations
// (read-only, keyed by path).
func NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), tools.Recover)

	root := r.Group("/api")
	root.POST("/events", StorageEvents)
	root.POST("/storage/token", GenerateUploadToken)
	root.GET("/recommendations/:userId", GetRecommendations)

	auth := root.Group("", AuthRequired())
	auth.POST("/energy/upload", UploadEnergyCsv)
	auth.POST("/energy/input", AddEnergyInput)
	auth.GET("/energy/history", GetEnergyHistory)
	auth.GET("/energy/history/:id", GetEnergyEntry)
	auth.GET("/alerts", ListAlerts)
	auth.GET("/alerts/:id", GetAlert)
	auth.POST("/alerts", CreateAlert)
	auth.DELETE("/alerts/:id", DeleteAlert)

	return r
}
