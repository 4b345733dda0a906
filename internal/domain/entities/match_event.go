package entities

import "time"

// MatchEvent records one match request for offline analysis. Queries that
// needed the generic fallback (or returned nothing at all) are the raw
// material for growing the keyword tables.
type MatchEvent struct {
	ID               string    `json:"id" db:"id"`
	Query            string    `json:"query" db:"query"`
	NormalizedQuery  string    `json:"normalized_query" db:"normalized_query"`
	Language         string    `json:"language" db:"language"`
	Urgency          Urgency   `json:"urgency" db:"urgency"`
	IntentConfidence float64   `json:"intent_confidence" db:"intent_confidence"`
	ResultCount      int       `json:"result_count" db:"result_count"`
	FallbackUsed     bool      `json:"fallback_used" db:"fallback_used"`
	LatencyMs        int64     `json:"latency_ms" db:"latency_ms"`
	UserLatitude     *float64  `json:"user_latitude,omitempty" db:"user_latitude"`
	UserLongitude    *float64  `json:"user_longitude,omitempty" db:"user_longitude"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
