package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lumeo-edu/assess-go-api/internal/analysis"
	"github.com/lumeo-edu/assess-go-api/internal/config"
	"github.com/lumeo-edu/assess-go-api/internal/database"
	"github.com/lumeo-edu/assess-go-api/internal/handler"
	"github.com/lumeo-edu/assess-go-api/internal/middleware"
	"github.com/lumeo-edu/assess-go-api/internal/models"
	"github.com/lumeo-edu/assess-go-api/internal/repository"
	"github.com/lumeo-edu/assess-go-api/internal/router"
	"github.com/lumeo-edu/assess-go-api/internal/service"
	"github.com/lumeo-edu/assess-go-api/pkg/ai"
	"github.com/lumeo-edu/assess-go-api/pkg/detect"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.AssessmentRecord{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, analysis caching disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()
	} else {
		logger.Warn().Msg("nats url not configured, event publishing disabled")
	}

	var classifier detect.Classifier
	if cfg.DetectorAPIKey != "" {
		client, err := detect.New(detect.Config{
			APIKey:  cfg.DetectorAPIKey,
			BaseURL: cfg.DetectorBaseURL,
			Timeout: cfg.DetectorTimeout,
			Logger:  logger,
		})
		if err != nil {
			log.Fatalf("failed to create detector client: %v", err)
		}
		classifier = client
	} else {
		logger.Warn().Msg("detector api key not configured, authenticity analysis disabled")
	}

	var assessor ai.Assessor
	if cfg.LLMAPIKey != "" {
		client, err := ai.NewClient(ai.ClientConfig{
			APIKey:  cfg.LLMAPIKey,
			BaseURL: cfg.LLMBaseURL,
			Model:   cfg.LLMModel,
			Logger:  logger,
		})
		if err != nil {
			log.Fatalf("failed to create assistant client: %v", err)
		}
		assessor = client
	} else {
		logger.Warn().Msg("llm api key not configured, grading and rubric generation disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	assessmentRepo := repository.NewAssessmentRepository(db)
	events := service.NewNATSPublisher(natsConn, "assess", logger)

	analysisService := service.NewAnalysisService(classifier, assessmentRepo, redisClient, events, validate, logger, service.AnalysisOptions{
		CacheTTL:    cfg.AnalysisCacheTTL,
		Concurrency: cfg.AnalysisConcurrency,
		Defaults: analysis.Config{
			Model:       cfg.DetectorModel,
			Granularity: analysis.Granularity(cfg.AnalysisGranularity),
			Method:      analysis.Method(cfg.AnalysisMethod),
		},
	})
	gradingService := service.NewGradingService(assessor, assessmentRepo, events, validate, logger)
	rubricService := service.NewRubricService(assessor, assessmentRepo, events, validate, logger)
	summaryService := service.NewSummaryService(assessor, assessmentRepo, events, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AnalysisHandler: handler.NewAnalysisHandler(analysisService, logger),
		GradingHandler:  handler.NewGradingHandler(gradingService, logger),
		RubricHandler:   handler.NewRubricHandler(rubricService, logger),
		SummaryHandler:  handler.NewSummaryHandler(summaryService, logger),
		RecordsHandler:  handler.NewRecordsHandler(assessmentRepo, validate, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
