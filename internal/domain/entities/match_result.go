package entities

// RankedResult is one scored caregiver in a match response. Results are
// recomputed per query and never persisted.
type RankedResult struct {
	Caregiver  *Caregiver `json:"caregiver"`
	MatchScore int        `json:"match_score"`
	DistanceKm *float64   `json:"distance_km,omitempty"`
	Reason     string     `json:"reason"`
	Rank       int        `json:"rank"`
}

// MatchResponse is the shaped output of the matching facade.
type MatchResponse struct {
	Results      []*RankedResult `json:"results"`
	Intent       *MedicalIntent  `json:"intent"`
	FallbackUsed bool            `json:"fallback_used"`
	Message      string          `json:"message,omitempty"`
}
