// Package http exposes the prayer times API over gin.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ID-Brains/islam-station/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(logger),
		errorHandlingMiddleware(logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		rateLimitMiddleware(cfg.HTTP.RateLimit, logger),
	)

	router.GET("/health", handler.Health)

	api := router.Group("/api/v1")
	{
		prayerGroup := api.Group("/prayer")
		{
			prayerGroup.GET("/times", handler.PrayerTimes)
			prayerGroup.GET("/times/monthly", handler.MonthlyPrayerTimes)
			prayerGroup.GET("/methods", handler.Methods)
			prayerGroup.GET("/qibla", handler.Qibla)
		}

		mosqueGroup := api.Group("/mosques")
		{
			mosqueGroup.GET("/nearby", handler.MosquesNearby)
			mosqueGroup.GET("/search", handler.MosquesSearch)
			mosqueGroup.GET("/:id", handler.MosqueByID)
		}

		dhikrGroup := api.Group("/dhikr")
		{
			dhikrGroup.GET("/random", handler.DhikrRandom)
			dhikrGroup.GET("/times-of-day", handler.DhikrTimesOfDay)
		}
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
