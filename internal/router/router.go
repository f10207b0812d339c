package router

import (
	"net/http"
	"time"

	"optimistify/internal/config"
	"optimistify/internal/handler"
	"optimistify/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const ReframePath = "/api/optimistify"

func Setup(cfg *config.Config, reframeHandler *handler.ReframeHandler) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery())
	router.Use(logger.Middleware())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    append([]string{logger.RequestIDHeader}, cfg.CORS.ExposedHeaders...),
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	router.POST(ReframePath, reframeHandler.Reframe)
	router.NoMethod(reframeHandler.MethodNotAllowed)

	return router
}
