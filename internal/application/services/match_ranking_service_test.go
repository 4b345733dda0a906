package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevacare/caregiver-match/internal/domain/entities"
)

func rankingService() *MatchRankingService {
	return NewMatchRankingService(DefaultScoreWeights())
}

func verifiedCaregiver(id string) *entities.Caregiver {
	return &entities.Caregiver{
		ID:         id,
		IsActive:   true,
		IsVerified: true,
	}
}

func TestRank_SpecializationOverlapOutscoresProviderTypeMatch(t *testing.T) {
	intent := cardiacIntent()

	specialist := verifiedCaregiver("specialist")
	specialist.Specializations = []string{"Cardiology"}
	specialist.ProviderType = entities.ProviderTypeNurse

	typeOnly := verifiedCaregiver("type-only")
	typeOnly.Specializations = []string{"Dermatology"}
	typeOnly.ProviderType = entities.ProviderTypeDoctor

	results := rankingService().Rank(context.Background(), []*entities.Caregiver{typeOnly, specialist}, intent, nil)
	require.Len(t, results, 2)

	assert.Equal(t, "specialist", results[0].Caregiver.ID)
	assert.Equal(t, 1, results[0].Rank)
	// 35 for the overlap against 20 for the provider type, all else equal.
	assert.Equal(t, 15, results[0].MatchScore-results[1].MatchScore)
}

func TestRank_SymptomTermAlsoCountsAsOverlap(t *testing.T) {
	intent := &entities.MedicalIntent{
		Symptoms:         []string{"elder care"},
		ProviderTypeHint: entities.ProviderTypeAny,
		Language:         "en",
	}

	c := verifiedCaregiver("elder")
	c.Specializations = []string{"Elder Care"}

	results := rankingService().Rank(context.Background(), []*entities.Caregiver{c}, intent, nil)
	require.Len(t, results, 1)
	// 35 overlap + 10 verification.
	assert.Equal(t, 45, results[0].MatchScore)
}

func TestRank_ComponentCapsAndClamp(t *testing.T) {
	intent := cardiacIntent()

	c := verifiedCaregiver("veteran")
	c.Specializations = []string{"Cardiology"}
	c.ProviderType = entities.ProviderTypeDoctor
	c.ExperienceYears = 40
	c.Rating = 5.0
	c.Location = &entities.Location{Latitude: 28.6139, Longitude: 77.2090}

	requester := &entities.Location{Latitude: 28.6139, Longitude: 77.2090}

	results := rankingService().Rank(context.Background(), []*entities.Caregiver{c}, intent, requester)
	require.Len(t, results, 1)

	// 35 + 20 (capped) + 15 (capped) + 10 + 10 proximity = 90.
	assert.Equal(t, 90, results[0].MatchScore)
	require.NotNil(t, results[0].DistanceKm)
	assert.InDelta(t, 0, *results[0].DistanceKm, 0.001)
}

func TestRank_ZeroFieldsScoreZeroComponents(t *testing.T) {
	intent := &entities.MedicalIntent{
		ProviderTypeHint: entities.ProviderTypeAny,
		Language:         "en",
	}

	c := &entities.Caregiver{ID: "bare", IsActive: true}

	results := rankingService().Rank(context.Background(), []*entities.Caregiver{c}, intent, nil)
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].MatchScore)
	assert.Nil(t, results[0].DistanceKm)
}

func TestRank_HigherRatingRanksHigher(t *testing.T) {
	intent := cardiacIntent()

	low := verifiedCaregiver("a-low")
	low.Specializations = []string{"Cardiology"}
	low.Rating = 2.0

	high := verifiedCaregiver("b-high")
	high.Specializations = []string{"Cardiology"}
	high.Rating = 2.8

	results := rankingService().Rank(context.Background(), []*entities.Caregiver{low, high}, intent, nil)
	require.Len(t, results, 2)
	assert.Equal(t, "b-high", results[0].Caregiver.ID)
	assert.Greater(t, results[0].MatchScore, results[1].MatchScore)
}

func TestRank_ProximityBonusTiers(t *testing.T) {
	intent := cardiacIntent()
	// Roughly 0.027 degrees of latitude is 3 km; 0.18 is 20 km.
	requester := &entities.Location{Latitude: 28.0, Longitude: 77.0}

	near := verifiedCaregiver("near")
	near.Location = &entities.Location{Latitude: 28.027, Longitude: 77.0}

	far := verifiedCaregiver("far")
	far.Location = &entities.Location{Latitude: 28.18, Longitude: 77.0}

	results := rankingService().Rank(context.Background(), []*entities.Caregiver{far, near}, intent, requester)
	require.Len(t, results, 2)

	assert.Equal(t, "near", results[0].Caregiver.ID)
	assert.Equal(t, 10, results[0].MatchScore-results[1].MatchScore)
}

func TestRank_DeterministicOrderingAndTieBreaks(t *testing.T) {
	intent := cardiacIntent()

	a := verifiedCaregiver("a")
	b := verifiedCaregiver("b")
	experienced := verifiedCaregiver("z")
	experienced.ExperienceYears = 3
	// Give the experienced one a rating deficit that exactly cancels the
	// experience points, forcing a same-score, different-experience case.
	a.Rating = 1.2
	b.Rating = 1.2

	first := rankingService().Rank(context.Background(), []*entities.Caregiver{b, experienced, a}, intent, nil)
	second := rankingService().Rank(context.Background(), []*entities.Caregiver{b, experienced, a}, intent, nil)

	require.Len(t, first, 3)
	for i := range first {
		assert.Equal(t, first[i].Caregiver.ID, second[i].Caregiver.ID)
		assert.Equal(t, i+1, first[i].Rank)
	}

	// Same score: experience desc breaks the tie, then ID asc.
	assert.Equal(t, "z", first[0].Caregiver.ID)
	assert.Equal(t, "a", first[1].Caregiver.ID)
	assert.Equal(t, "b", first[2].Caregiver.ID)
}

func TestRank_DropsCandidatesWithoutIdentity(t *testing.T) {
	intent := cardiacIntent()

	anonymous := &entities.Caregiver{DisplayName: "No ID", IsVerified: true}
	named := verifiedCaregiver("named")

	results := rankingService().Rank(context.Background(), []*entities.Caregiver{anonymous, named}, intent, nil)
	require.Len(t, results, 1)
	assert.Equal(t, "named", results[0].Caregiver.ID)
}

func TestBuildReason_Localized(t *testing.T) {
	c := verifiedCaregiver("dr")
	c.Specializations = []string{"Cardiology"}
	c.ExperienceYears = 8
	c.Rating = 4.5

	en := cardiacIntent()
	assert.Equal(t, "Specializes in Cardiology with 8 years of experience, rated 4.5", buildReason(c, en))

	hi := cardiacIntent()
	hi.Language = "hi"
	assert.Equal(t, "Cardiology में विशेषज्ञ, 8 वर्ष का अनुभव, 4.5 रेटिंग", buildReason(c, hi))

	unsupported := cardiacIntent()
	unsupported.Language = "fr"
	assert.Contains(t, buildReason(c, unsupported), "Specializes in Cardiology")
}

func TestBuildReason_ProviderTypeFallback(t *testing.T) {
	c := verifiedCaregiver("nurse")
	c.ProviderType = entities.ProviderTypeNurse
	c.ExperienceYears = 5
	c.Rating = 4.0

	intent := &entities.MedicalIntent{
		Specializations:  []string{"Cardiology"},
		ProviderTypeHint: entities.ProviderTypeNurse,
		Language:         "en",
	}

	assert.Equal(t, "Experienced nurse with 5 years of experience, rated 4.0", buildReason(c, intent))
}
