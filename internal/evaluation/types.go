package evaluation

import (
	"time"

	"github.com/sevacare/caregiver-match/internal/domain/entities"
)

// GoldenQuery is a labeled test query with expected matching outcomes.
type GoldenQuery struct {
	ID                      string           `json:"id"`
	Query                   string           `json:"query"`
	Language                string           `json:"language"`
	ExpectedSpecializations []string         `json:"expected_specializations"`
	ExpectedProviderType    string           `json:"expected_provider_type"`
	MinUrgency              entities.Urgency `json:"min_urgency"`
	Difficulty              string           `json:"difficulty"` // easy, medium, hard
}

// EvalResult holds the evaluation outcome for a single query.
type EvalResult struct {
	QueryID         string
	Query           string
	RecallAt10      float64
	MRRAt10         float64
	UrgencyMet      bool
	ProviderTypeHit bool
	ResultCount     int
	FallbackUsed    bool
	Latency         time.Duration
}

// EvalSummary holds aggregate metrics across all golden queries.
type EvalSummary struct {
	TotalQueries        int
	AvgRecallAt10       float64
	AvgMRRAt10          float64
	UrgencyAccuracy     float64
	ProviderTypeHitRate float64
	AvgLatency          time.Duration
	QueriesWithHits     int
	FallbackQueries     int
	ByDifficulty        map[string]*DifficultySummary
}

// DifficultySummary holds metrics grouped by query difficulty.
type DifficultySummary struct {
	Count         int
	AvgRecallAt10 float64
	AvgMRRAt10    float64
}
