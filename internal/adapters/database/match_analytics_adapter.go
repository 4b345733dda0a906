package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/sevacare/caregiver-match/internal/domain/entities"
	"github.com/sevacare/caregiver-match/internal/domain/repositories"
	"github.com/sevacare/caregiver-match/internal/infrastructure/clients/postgres"
	apperrors "github.com/sevacare/caregiver-match/pkg/errors"
)

type MatchAnalyticsAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

func NewMatchAnalyticsAdapter(client *postgres.Client) repositories.MatchAnalyticsRepository {
	return &MatchAnalyticsAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func (a *MatchAnalyticsAdapter) LogEvent(ctx context.Context, event *entities.MatchEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	record := goqu.Record{
		"id":                event.ID,
		"query":             event.Query,
		"normalized_query":  event.NormalizedQuery,
		"language":          event.Language,
		"urgency":           string(event.Urgency),
		"intent_confidence": event.IntentConfidence,
		"result_count":      event.ResultCount,
		"fallback_used":     event.FallbackUsed,
		"latency_ms":        event.LatencyMs,
		"user_latitude":     nullFloat(event.UserLatitude),
		"user_longitude":    nullFloat(event.UserLongitude),
		"created_at":        event.CreatedAt,
	}

	query, args, err := a.db.Insert("match_analytics").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to log match event", err)
	}
	return nil
}

// GetFallbackQueries returns recent events where the cascade degraded to
// the generic stage or nothing came back at all. These queries are the
// candidates for new keyword table entries.
func (a *MatchAnalyticsAdapter) GetFallbackQueries(ctx context.Context, limit int) ([]*entities.MatchEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	query, args, err := a.db.Select(
		"id", "query", "normalized_query", "language", "urgency",
		"intent_confidence", "result_count", "fallback_used", "latency_ms",
		"user_latitude", "user_longitude", "created_at",
	).From("match_analytics").
		Where(goqu.Or(
			goqu.Ex{"fallback_used": true},
			goqu.Ex{"result_count": 0},
		)).
		Order(goqu.I("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get fallback queries", err)
	}
	defer rows.Close()

	var events []*entities.MatchEvent
	for rows.Next() {
		e := &entities.MatchEvent{}
		var urgency string
		var lat, lon sql.NullFloat64
		err := rows.Scan(
			&e.ID,
			&e.Query,
			&e.NormalizedQuery,
			&e.Language,
			&urgency,
			&e.IntentConfidence,
			&e.ResultCount,
			&e.FallbackUsed,
			&e.LatencyMs,
			&lat,
			&lon,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan match event", err)
		}
		e.Urgency = entities.ParseUrgency(urgency)
		if lat.Valid {
			v := lat.Float64
			e.UserLatitude = &v
		}
		if lon.Valid {
			v := lon.Float64
			e.UserLongitude = &v
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating match events", err)
	}

	return events, nil
}
