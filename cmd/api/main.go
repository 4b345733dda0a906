package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sevacare/caregiver-match/internal/adapters/cache"
	"github.com/sevacare/caregiver-match/internal/adapters/database"
	"github.com/sevacare/caregiver-match/internal/api/handlers"
	"github.com/sevacare/caregiver-match/internal/api/routes"
	"github.com/sevacare/caregiver-match/internal/application/services"
	"github.com/sevacare/caregiver-match/internal/domain/providers"
	"github.com/sevacare/caregiver-match/internal/infrastructure/clients/openai"
	"github.com/sevacare/caregiver-match/internal/infrastructure/clients/postgres"
	"github.com/sevacare/caregiver-match/internal/infrastructure/clients/redis"
	"github.com/sevacare/caregiver-match/internal/infrastructure/observability"
	"github.com/sevacare/caregiver-match/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// The caregiver store is the one hard dependency.
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Redis is optional; the application works uncached without it.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Println("Redis client initialized successfully")
	}

	caregiverAdapter := database.NewCaregiverAdapter(pgClient)
	analyticsAdapter := database.NewMatchAnalyticsAdapter(pgClient)

	// The LLM extraction strategy is optional; without a key the pattern
	// strategy serves every query.
	var llmExtractor *services.LLMExtractor
	if cfg.OpenAI.APIKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set; intent extraction is pattern-only")
	} else {
		openaiClient, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			log.Printf("Warning: Failed to initialize OpenAI client: %v", err)
		} else {
			llmExtractor = services.NewLLMExtractor(
				openaiClient,
				services.ControlledSpecializations,
				time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second,
			)
			log.Println("OpenAI client initialized successfully")
		}
	}

	patternExtractor := services.NewPatternExtractor(
		services.DefaultIntentRules(),
		services.ControlledSpecializations,
	)
	intentService := services.NewIntentService(
		patternExtractor,
		llmExtractor,
		cacheProvider,
		cfg.Match.IntentCacheSeconds,
	)

	searchService := services.NewCandidateSearchService(caregiverAdapter, services.CandidateSearchOptions{
		TargetCandidates: cfg.Match.TargetCandidates,
		BioTermLimit:     cfg.Match.BioTermLimit,
		StageTimeout:     time.Duration(cfg.Match.StageTimeoutSeconds) * time.Second,
	})

	rankingService := services.NewMatchRankingService(services.ScoreWeights{
		Specialization: cfg.Match.WeightSpecialization,
		ProviderType:   cfg.Match.WeightProviderType,
		ExperienceCap:  cfg.Match.WeightExperienceCap,
		RatingCap:      cfg.Match.WeightRatingCap,
		Verification:   cfg.Match.WeightVerification,
		ProximityNear:  cfg.Match.WeightProximityNear,
		ProximityMid:   cfg.Match.WeightProximityMid,
	})

	analyticsService := services.NewMatchAnalyticsService(analyticsAdapter)

	matchService := services.NewMatchService(
		intentService,
		searchService,
		rankingService,
		analyticsService,
		metrics,
		cfg.Match.PageSize,
	)

	matchHandler := handlers.NewMatchHandler(matchService, analyticsService)
	caregiverHandler := handlers.NewCaregiverHandler(caregiverAdapter)

	router := routes.NewRouter(matchHandler, caregiverHandler, metrics)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
