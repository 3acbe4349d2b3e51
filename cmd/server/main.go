package main

import (
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"propmatch/server/config"
	"propmatch/server/internal/api"
	"propmatch/server/internal/database"
	"propmatch/server/internal/matching"
	"propmatch/server/internal/processor"
	"propmatch/server/internal/queue"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// Optional .env for local development
	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded environment from .env")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.WithError(err).Fatal("Failed to create database directory")
		}
	}
	logger.Infof("Using database at: %s", cfg.Database.Path)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	// Run database migrations
	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	// Initialize the alert matching engine
	engine := matching.NewEngine(db, db, cfg.Matching.RenotifyOnUpdate, logger)

	// Initialize the listing ingest pipeline
	gormDB, err := database.OpenGorm(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open ingest database handle")
	}

	ingestQueue := queue.NewListingQueue(cfg.BatchProcessing.MaxBatchSize, logger)
	batchProcessor := processor.NewBatchProcessor(gormDB, ingestQueue, cfg, logger)
	batchProcessor.SetMatchingEngine(engine)
	batchProcessor.Start()
	defer batchProcessor.Stop()
	ingestQueue.Start()
	defer ingestQueue.Close()

	// Initialize router
	router := gin.Default()
	router.Use(cors.Default())

	handler := api.NewHandler(db, engine, logger)
	handler.SetImportQueue(ingestQueue)
	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
