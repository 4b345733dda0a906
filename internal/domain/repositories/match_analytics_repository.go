package repositories

import (
	"context"

	"github.com/sevacare/caregiver-match/internal/domain/entities"
)

// MatchAnalyticsRepository persists match events for offline reporting.
type MatchAnalyticsRepository interface {
	// LogEvent records a completed match request
	LogEvent(ctx context.Context, event *entities.MatchEvent) error

	// GetFallbackQueries returns recent events that needed the generic
	// fallback stage or produced zero results
	GetFallbackQueries(ctx context.Context, limit int) ([]*entities.MatchEvent, error)
}
