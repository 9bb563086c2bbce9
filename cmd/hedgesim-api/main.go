package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/api"
	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/logger"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	if v := os.Getenv("API_VERBOSITY"); v != "" {
		switch v {
		case "0", "1", "2", "3":
			logger.SetVerbosity(int(v[0] - '0'))
		}
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(api.Recovery())
	router.Use(api.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	api.NewExperimentHandler().Register(v1)

	logger.Infof("listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
