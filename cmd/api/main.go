package main

import (
	"fmt"
	"log"
	"os"

	"rooftop-solar/internal/api/handlers"
	"rooftop-solar/internal/api/middleware"
	"rooftop-solar/internal/config"
	"rooftop-solar/internal/estimator"

	"github.com/gin-gonic/gin"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	cfg := config.Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", path, err)
		}
		cfg = loaded
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	estimateHandler := handlers.NewEstimateHandler(estimator.New(cfg))
	proxyHandler := handlers.NewProxyHandler(cfg.Services.PVGISURL)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// The proxy lives next to the API so browser frontends have a single
	// same-origin endpoint for PVGIS data.
	router.GET("/irradiance", proxyHandler.Irradiance)

	api := router.Group("/api/v1")
	{
		api.POST("/estimate", estimateHandler.Estimate)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
