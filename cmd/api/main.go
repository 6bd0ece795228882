package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/prepio/internal/config"
	"alfredoptarigan/prepio/internal/handlers"
	"alfredoptarigan/prepio/internal/repositories"
	"alfredoptarigan/prepio/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	config.SetupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("❌ Invalid configuration")
	}
	log.Info().Str("env", cfg.Server.Env).Msg("✅ Config loaded successfully")

	ctx := context.Background()

	// Initialize generation client
	generationClient, err := services.NewGenerationClient(ctx, cfg.Generation)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize generation client")
	}
	log.Info().
		Str("provider", generationClient.Provider()).
		Str("question_model", generationClient.Model(services.CallQuestions)).
		Str("feedback_model", generationClient.Model(services.CallFeedback)).
		Msg("✅ Generation client initialized successfully")

	// Optional audit log of generation calls
	var (
		recordWorker   services.RecordWorker
		generationRepo repositories.GenerationRepository
	)
	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to initialize database")
		}

		generationRepo = repositories.NewGenerationRepository(db)
		recordWorker = services.NewRecordWorker(generationRepo, cfg.Recorder.Concurrency, cfg.Recorder.QueueSize)
		recordWorker.Start()
		generationClient = services.WithRecording(generationClient, recordWorker)
	}

	// Initialize services
	interviewService := services.NewInterviewService(
		services.NewDocumentExtractor(),
		generationClient,
		services.InterviewOptions{
			DefaultQuestionType:  cfg.Interview.DefaultQuestionType,
			DefaultQuestionCount: cfg.Interview.DefaultQuestionCount,
			StrictQuestionCount:  cfg.Interview.StrictQuestionCount,
		},
	)
	log.Info().Msg("✅ Services initialized successfully")

	// Initialize handlers
	questionHandler := handlers.NewQuestionHandler(interviewService, cfg.Upload.MaxFileSize)
	feedbackHandler := handlers.NewFeedbackHandler(interviewService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Prepio Interview API",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		// Multipart framing on top of the largest accepted file.
		BodyLimit:    int(cfg.Upload.MaxFileSize) + 64*1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/generate-questions", questionHandler.HandleGenerateQuestions)
	api.Post("/get-feedback", feedbackHandler.HandleGetFeedback)

	endpoints := []string{
		"POST /api/generate-questions",
		"POST /api/get-feedback",
		"GET /api/health",
	}

	if generationRepo != nil {
		generationHandler := handlers.NewGenerationHandler(generationRepo)
		api.Get("/generations", generationHandler.HandleListGenerations)
		api.Get("/generations/:id", generationHandler.HandleGetGeneration)
		endpoints = append(endpoints, "GET /api/generations", "GET /api/generations/:id")
	}

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Prepio Interview API",
			"version":   "1.0.0",
			"endpoints": endpoints,
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("❌ Server forced to shutdown")
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("🚀 Server starting")

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to start server")
	}

	// Drain pending records once the server has stopped.
	if recordWorker != nil {
		recordWorker.Stop()
	}
}
