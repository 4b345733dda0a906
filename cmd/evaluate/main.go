package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/sevacare/caregiver-match/internal/adapters/database"
	"github.com/sevacare/caregiver-match/internal/application/services"
	"github.com/sevacare/caregiver-match/internal/evaluation"
	"github.com/sevacare/caregiver-match/internal/infrastructure/clients/postgres"
	"github.com/sevacare/caregiver-match/internal/infrastructure/observability"
	"github.com/sevacare/caregiver-match/pkg/config"
)

func main() {
	goldenPath := flag.String("golden", "config/golden_queries.json", "path to the golden query set")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	observability.InitLogger("caregiver-match-evaluate", cfg.Server.Env)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pgClient.Close()

	caregiverRepo := database.NewCaregiverAdapter(pgClient)

	// The evaluation run is pattern-only and uncached so results are
	// reproducible.
	intentService := services.NewIntentService(
		services.NewPatternExtractor(services.DefaultIntentRules(), services.ControlledSpecializations),
		nil, nil, cfg.Match.IntentCacheSeconds,
	)
	searchService := services.NewCandidateSearchService(caregiverRepo, services.CandidateSearchOptions{
		TargetCandidates: cfg.Match.TargetCandidates,
		BioTermLimit:     cfg.Match.BioTermLimit,
	})
	rankingService := services.NewMatchRankingService(services.DefaultScoreWeights())
	matchService := services.NewMatchService(
		intentService, searchService, rankingService, nil, nil, cfg.Match.PageSize,
	)

	queries, err := evaluation.LoadGoldenQueries(*goldenPath)
	if err != nil {
		log.Fatalf("Failed to load golden queries: %v", err)
	}
	if err := evaluation.ValidateGoldenQueries(queries); err != nil {
		log.Fatalf("Invalid golden queries: %v", err)
	}

	runner := evaluation.NewRunner(matchService)
	summary, err := runner.Run(context.Background(), queries)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
}
