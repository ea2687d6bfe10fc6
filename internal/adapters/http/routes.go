package http

import (
	"presencewatch/internal/core/ports"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// NewRouter builds a gin engine with recovery and request logging and
// registers every route on it.
func NewRouter(presenceSvc ports.PresenceService, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	RegisterRoutes(r, presenceSvc, logger)
	return r
}

func RegisterRoutes(r *gin.Engine, presenceSvc ports.PresenceService, logger *zap.Logger) {

	h := NewHandler(presenceSvc, logger)

	api := r.Group("/api/v1")
	{
		devicesGroup := api.Group("/devices")
		{
			devicesGroup.GET("", h.GetDevices)
			devicesGroup.POST("/:device_id/transitions", h.PostTransition)
			devicesGroup.GET("/:device_id/stats", h.GetStats)
			devicesGroup.GET("/:device_id/sessions", h.GetSessions)
		}
		api.GET("/history", h.GetHistory)
	}
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
