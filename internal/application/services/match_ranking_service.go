package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sevacare/caregiver-match/internal/domain/entities"
	"github.com/sevacare/caregiver-match/internal/infrastructure/observability"
	"github.com/sevacare/caregiver-match/pkg/geo"
)

// ScoreWeights are the per-component caps of the composite match score.
// They come from the environment so ranking behavior can be tuned without
// a deploy; DefaultScoreWeights mirrors the documented defaults.
type ScoreWeights struct {
	Specialization int
	ProviderType   int
	ExperienceCap  int
	RatingCap      int
	Verification   int
	ProximityNear  int
	ProximityMid   int
}

// DefaultScoreWeights returns the standard 35/20/20/15/10 composition with
// a 10/5 proximity bonus.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Specialization: 35,
		ProviderType:   20,
		ExperienceCap:  20,
		RatingCap:      15,
		Verification:   10,
		ProximityNear:  10,
		ProximityMid:   5,
	}
}

// MatchRankingService scores and orders candidates against an intent.
type MatchRankingService struct {
	weights ScoreWeights
}

// NewMatchRankingService creates the ranker with the given weights.
func NewMatchRankingService(weights ScoreWeights) *MatchRankingService {
	return &MatchRankingService{weights: weights}
}

// Rank scores every candidate, sorts deterministically, and assigns ranks
// starting at 1. Candidates without an identity cannot be ranked and are
// dropped with a warning. The output order is stable across runs for
// identical input.
func (s *MatchRankingService) Rank(ctx context.Context, candidates []*entities.Caregiver, intent *entities.MedicalIntent, location *entities.Location) []*entities.RankedResult {
	logger := observability.LoggerFromContext(ctx)

	results := make([]*entities.RankedResult, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if c.ID == "" {
			logger.Warn().
				Str("display_name", c.DisplayName).
				Msg("dropping unscorable caregiver without identity")
			continue
		}

		distance := distanceBetween(c.Location, location)
		score := s.score(c, intent, distance)

		results = append(results, &entities.RankedResult{
			Caregiver:  c,
			MatchScore: score,
			DistanceKm: distance,
			Reason:     buildReason(c, intent),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchScore != results[j].MatchScore {
			return results[i].MatchScore > results[j].MatchScore
		}
		if results[i].Caregiver.ExperienceYears != results[j].Caregiver.ExperienceYears {
			return results[i].Caregiver.ExperienceYears > results[j].Caregiver.ExperienceYears
		}
		return results[i].Caregiver.ID < results[j].Caregiver.ID
	})

	for i, r := range results {
		r.Rank = i + 1
	}
	return results
}

// score computes the composite match score. Each component is capped
// before summation; the total is clamped to [0,100].
func (s *MatchRankingService) score(c *entities.Caregiver, intent *entities.MedicalIntent, distance *float64) int {
	score := 0

	// Overlap component: specialization match beats provider-type match,
	// and they never stack.
	switch {
	case specializationOverlaps(c.Specializations, intent):
		score += s.weights.Specialization
	case intent.ProviderTypeHint != entities.ProviderTypeAny && c.ProviderType == intent.ProviderTypeHint:
		score += s.weights.ProviderType
	}

	if exp := c.ExperienceYears * 2; exp > 0 {
		score += minInt(exp, s.weights.ExperienceCap)
	}
	if rating := int(math.Round(c.Rating * 5)); rating > 0 {
		score += minInt(rating, s.weights.RatingCap)
	}
	if c.IsVerified {
		score += s.weights.Verification
	}
	if distance != nil {
		switch {
		case *distance <= 5:
			score += s.weights.ProximityNear
		case *distance <= 15:
			score += s.weights.ProximityMid
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// specializationOverlaps reports whether any caregiver specialization
// matches any intent specialization or symptom term, case-insensitively
// and by substring in either direction.
func specializationOverlaps(specializations []string, intent *entities.MedicalIntent) bool {
	terms := make([]string, 0, len(intent.Specializations)+len(intent.Symptoms))
	for _, t := range intent.Specializations {
		terms = append(terms, strings.ToLower(t))
	}
	for _, t := range intent.Symptoms {
		terms = append(terms, strings.ToLower(t))
	}

	for _, spec := range specializations {
		sl := strings.ToLower(strings.TrimSpace(spec))
		if sl == "" {
			continue
		}
		for _, term := range terms {
			if term == "" {
				continue
			}
			if strings.Contains(sl, term) || strings.Contains(term, sl) {
				return true
			}
		}
	}
	return false
}

// matchedSpecialization returns the first caregiver specialization that
// overlaps the intent, for the reason string.
func matchedSpecialization(specializations []string, intent *entities.MedicalIntent) string {
	for _, spec := range specializations {
		if specializationOverlaps([]string{spec}, intent) {
			return spec
		}
	}
	return ""
}

func distanceBetween(caregiver, requester *entities.Location) *float64 {
	if caregiver == nil || requester == nil {
		return nil
	}
	d := geo.Distance(caregiver.Latitude, caregiver.Longitude, requester.Latitude, requester.Longitude)
	return &d
}

var providerTypeLabels = map[string]map[entities.ProviderType]string{
	"en": {
		entities.ProviderTypeDoctor:          "doctor",
		entities.ProviderTypeNurse:           "nurse",
		entities.ProviderTypeTherapist:       "therapist",
		entities.ProviderTypeCommunityWorker: "community health worker",
		entities.ProviderTypeAny:             "caregiver",
	},
	"hi": {
		entities.ProviderTypeDoctor:          "डॉक्टर",
		entities.ProviderTypeNurse:           "नर्स",
		entities.ProviderTypeTherapist:       "थेरेपिस्ट",
		entities.ProviderTypeCommunityWorker: "सामुदायिक स्वास्थ्य कार्यकर्ता",
		entities.ProviderTypeAny:             "देखभालकर्ता",
	},
}

func providerTypeLabel(pt entities.ProviderType, language string) string {
	labels, ok := providerTypeLabels[language]
	if !ok {
		labels = providerTypeLabels["en"]
	}
	if label, ok := labels[pt]; ok {
		return label
	}
	return labels[entities.ProviderTypeAny]
}

// buildReason composes the localized justification sentence, naming the
// matched specialization when one exists and the provider type otherwise.
// Unsupported languages fall back to English.
func buildReason(c *entities.Caregiver, intent *entities.MedicalIntent) string {
	spec := matchedSpecialization(c.Specializations, intent)

	if intent.Language == "hi" {
		if spec != "" {
			return fmt.Sprintf("%s में विशेषज्ञ, %d वर्ष का अनुभव, %.1f रेटिंग", spec, c.ExperienceYears, c.Rating)
		}
		return fmt.Sprintf("%s, %d वर्ष का अनुभव, %.1f रेटिंग",
			providerTypeLabel(c.ProviderType, "hi"), c.ExperienceYears, c.Rating)
	}

	if spec != "" {
		return fmt.Sprintf("Specializes in %s with %d years of experience, rated %.1f", spec, c.ExperienceYears, c.Rating)
	}
	return fmt.Sprintf("Experienced %s with %d years of experience, rated %.1f",
		providerTypeLabel(c.ProviderType, "en"), c.ExperienceYears, c.Rating)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
