package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/sevacare/caregiver-match/internal/domain/entities"
	"github.com/sevacare/caregiver-match/internal/infrastructure/observability"
	apperrors "github.com/sevacare/caregiver-match/pkg/errors"
)

var emergencyAdvisory = map[string]string{
	"en": "This may be a medical emergency. Please seek immediate in-person or emergency care.",
	"hi": "यह एक चिकित्सा आपात स्थिति हो सकती है। कृपया तुरंत नज़दीकी अस्पताल या आपातकालीन सेवा से संपर्क करें।",
}

var noResultsMessage = map[string]string{
	"en": "No caregivers matched your query. Please try rephrasing or broadening your search.",
	"hi": "आपकी खोज से कोई देखभालकर्ता नहीं मिला। कृपया अपनी खोज को दोबारा या व्यापक रूप से लिखें।",
}

// MatchService is the single entry point of the matching pipeline: intent
// extraction, cascading candidate search, scoring, and response shaping.
type MatchService struct {
	intents   *IntentService
	search    *CandidateSearchService
	ranker    *MatchRankingService
	analytics *MatchAnalyticsService
	metrics   *observability.Metrics
	pageSize  int
}

// NewMatchService creates the matching facade. analytics and metrics may
// be nil.
func NewMatchService(
	intents *IntentService,
	search *CandidateSearchService,
	ranker *MatchRankingService,
	analytics *MatchAnalyticsService,
	metrics *observability.Metrics,
	pageSize int,
) *MatchService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &MatchService{
		intents:   intents,
		search:    search,
		ranker:    ranker,
		analytics: analytics,
		metrics:   metrics,
		pageSize:  pageSize,
	}
}

// Match runs the full pipeline for one query. It fails only on an empty
// query or a completely unreachable store; everything else degrades.
func (s *MatchService) Match(ctx context.Context, query, language string, location *entities.Location) (*entities.MatchResponse, error) {
	ctx, span := observability.StartSpan(ctx, "MatchService.Match")
	defer span.End()

	started := time.Now()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("query must not be empty")
	}
	language = normalizeLanguage(language)

	intent := s.intents.Extract(ctx, query, language)

	observability.SetSpanAttributes(span,
		attribute.String("match.language", language),
		attribute.String("match.urgency", string(intent.Urgency)),
		attribute.Float64("match.confidence", intent.Confidence),
	)

	candidates, fallbackUsed, err := s.search.Search(ctx, intent)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	results := s.ranker.Rank(ctx, candidates, intent, location)
	if len(results) > s.pageSize {
		results = results[:s.pageSize]
	}

	response := &entities.MatchResponse{
		Results:      results,
		Intent:       intent,
		FallbackUsed: fallbackUsed,
	}
	switch {
	case intent.Urgency == entities.UrgencyEmergency:
		response.Message = localized(emergencyAdvisory, language)
	case len(results) == 0:
		response.Message = localized(noResultsMessage, language)
	}

	latency := time.Since(started).Milliseconds()
	if s.analytics != nil {
		s.analytics.RecordMatch(ctx, intent, len(results), fallbackUsed, latency, location)
	}
	observability.RecordMatchOutcome(ctx, s.metrics, fallbackUsed, len(results))

	observability.LoggerFromContext(ctx).Info().
		Str("query", query).
		Str("language", language).
		Str("urgency", string(intent.Urgency)).
		Int("result_count", len(results)).
		Bool("fallback_used", fallbackUsed).
		Int64("latency_ms", latency).
		Msg("match request completed")

	return response, nil
}

func localized(messages map[string]string, language string) string {
	if m, ok := messages[language]; ok {
		return m
	}
	return messages["en"]
}
