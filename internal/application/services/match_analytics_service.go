package services

import (
	"context"
	"strings"

	"github.com/sevacare/caregiver-match/internal/domain/entities"
	"github.com/sevacare/caregiver-match/internal/domain/repositories"
	"github.com/sevacare/caregiver-match/internal/infrastructure/observability"
)

// MatchAnalyticsService records match outcomes for offline keyword-table
// curation. Recording is strictly best-effort: a failed write must never
// affect the match response.
type MatchAnalyticsService struct {
	repo repositories.MatchAnalyticsRepository
}

// NewMatchAnalyticsService creates the analytics service. repo may be nil
// when no analytics store is configured; the service becomes a no-op.
func NewMatchAnalyticsService(repo repositories.MatchAnalyticsRepository) *MatchAnalyticsService {
	return &MatchAnalyticsService{repo: repo}
}

// RecordMatch logs one match outcome. Errors are logged and swallowed.
func (s *MatchAnalyticsService) RecordMatch(ctx context.Context, intent *entities.MedicalIntent, resultCount int, fallbackUsed bool, latencyMs int64, location *entities.Location) {
	if s.repo == nil {
		return
	}

	event := &entities.MatchEvent{
		Query:            intent.RawQuery,
		NormalizedQuery:  strings.ToLower(strings.TrimSpace(intent.RawQuery)),
		Language:         intent.Language,
		Urgency:          intent.Urgency,
		IntentConfidence: intent.Confidence,
		ResultCount:      resultCount,
		FallbackUsed:     fallbackUsed,
		LatencyMs:        latencyMs,
	}
	if location != nil {
		event.UserLatitude = &location.Latitude
		event.UserLongitude = &location.Longitude
	}

	if err := s.repo.LogEvent(ctx, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Msg("failed to record match event")
	}
}

// FallbackQueries returns recent queries that degraded to the generic
// stage or returned nothing, the raw material for new keyword rules.
func (s *MatchAnalyticsService) FallbackQueries(ctx context.Context, limit int) ([]*entities.MatchEvent, error) {
	if s.repo == nil {
		return []*entities.MatchEvent{}, nil
	}
	return s.repo.GetFallbackQueries(ctx, limit)
}
