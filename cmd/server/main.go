package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"capsight/config"
	"capsight/internal/api"
	"capsight/internal/appraisal"
	"capsight/internal/batch"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Built-in grid, with file overrides merged on top when configured.
	grid := config.CapRateGrid()
	if cfg.CapRateGridPath != "" {
		logger.Infof("Loading cap rate grid overrides from: %s", cfg.CapRateGridPath)
		grid, err = config.LoadCapRateGrid(cfg.CapRateGridPath)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load cap rate grid")
		}
	}

	engine := appraisal.NewEngine(cfg, grid, logger)
	runner := batch.NewRunner(engine, cfg.Batch.WorkerCount, logger)
	handler := api.NewHandler(engine, runner, grid, logger)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))

	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
