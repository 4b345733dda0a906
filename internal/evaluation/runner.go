package evaluation

import (
	"context"
	"time"

	"github.com/sevacare/caregiver-match/internal/domain/entities"
)

// Matcher is the slice of the matching facade the runner needs.
type Matcher interface {
	Match(ctx context.Context, query, language string, location *entities.Location) (*entities.MatchResponse, error)
}

// Runner runs the evaluation across a set of golden queries.
type Runner struct {
	matcher Matcher
}

func NewRunner(matcher Matcher) *Runner {
	return &Runner{matcher: matcher}
}

// Run evaluates every golden query and aggregates the outcome. Queries the
// matcher fails on are skipped rather than aborting the run.
func (r *Runner) Run(ctx context.Context, queries []GoldenQuery) (*EvalSummary, error) {
	summary := &EvalSummary{
		TotalQueries: len(queries),
		ByDifficulty: make(map[string]*DifficultySummary),
	}

	urgencyHits := 0
	providerTypeHits := 0
	providerTypeChecked := 0

	for _, gq := range queries {
		start := time.Now()
		resp, err := r.matcher.Match(ctx, gq.Query, gq.Language, nil)
		latency := time.Since(start)

		if err != nil {
			continue
		}

		retrieved := retrievedSpecializations(resp.Results)
		recall := RecallAtK(gq.ExpectedSpecializations, retrieved, 10)
		mrr := MRRAtK(gq.ExpectedSpecializations, retrieved, 10)

		result := EvalResult{
			QueryID:      gq.ID,
			Query:        gq.Query,
			RecallAt10:   recall,
			MRRAt10:      mrr,
			UrgencyMet:   resp.Intent.Urgency.AtLeast(gq.MinUrgency),
			ResultCount:  len(resp.Results),
			FallbackUsed: resp.FallbackUsed,
			Latency:      latency,
		}
		if gq.ExpectedProviderType != "" && len(resp.Results) > 0 {
			providerTypeChecked++
			expected := entities.ParseProviderType(gq.ExpectedProviderType)
			if resp.Results[0].Caregiver.ProviderType == expected {
				result.ProviderTypeHit = true
				providerTypeHits++
			}
		}
		if result.UrgencyMet {
			urgencyHits++
		}

		r.updateSummary(summary, gq, result)
	}

	r.finalizeSummary(summary)
	if summary.TotalQueries > 0 {
		summary.UrgencyAccuracy = float64(urgencyHits) / float64(summary.TotalQueries)
	}
	if providerTypeChecked > 0 {
		summary.ProviderTypeHitRate = float64(providerTypeHits) / float64(providerTypeChecked)
	}
	return summary, nil
}

// retrievedSpecializations flattens result specializations in rank order,
// so recall and MRR respect the ranking.
func retrievedSpecializations(results []*entities.RankedResult) []string {
	var out []string
	for _, res := range results {
		out = append(out, res.Caregiver.Specializations...)
	}
	return out
}

func (r *Runner) updateSummary(s *EvalSummary, gq GoldenQuery, res EvalResult) {
	s.AvgRecallAt10 += res.RecallAt10
	s.AvgMRRAt10 += res.MRRAt10
	s.AvgLatency += res.Latency
	if res.ResultCount > 0 {
		s.QueriesWithHits++
	}
	if res.FallbackUsed {
		s.FallbackQueries++
	}

	if _, ok := s.ByDifficulty[gq.Difficulty]; !ok {
		s.ByDifficulty[gq.Difficulty] = &DifficultySummary{}
	}
	ds := s.ByDifficulty[gq.Difficulty]
	ds.Count++
	ds.AvgRecallAt10 += res.RecallAt10
	ds.AvgMRRAt10 += res.MRRAt10
}

func (r *Runner) finalizeSummary(s *EvalSummary) {
	if s.TotalQueries > 0 {
		n := float64(s.TotalQueries)
		s.AvgRecallAt10 /= n
		s.AvgMRRAt10 /= n
		s.AvgLatency /= time.Duration(s.TotalQueries)
	}

	for _, ds := range s.ByDifficulty {
		if ds.Count > 0 {
			n := float64(ds.Count)
			ds.AvgRecallAt10 /= n
			ds.AvgMRRAt10 /= n
		}
	}
}
