package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/appraise", handler.Appraise)
		api.POST("/appraise/batch", handler.AppraiseBatch)
		api.GET("/cap-rates", handler.GetCapRates)
	}
}
