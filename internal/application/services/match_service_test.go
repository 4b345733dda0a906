package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevacare/caregiver-match/internal/domain/entities"
	apperrors "github.com/sevacare/caregiver-match/pkg/errors"
)

func newMatchService(repo *fakeCaregiverRepo) *MatchService {
	intents := NewIntentService(newPatternExtractor(), nil, nil, 60)
	search := NewCandidateSearchService(repo, searchOpts())
	ranker := NewMatchRankingService(DefaultScoreWeights())
	return NewMatchService(intents, search, ranker, nil, nil, 3)
}

func TestMatch_EmptyQueryIsValidationError(t *testing.T) {
	svc := newMatchService(&fakeCaregiverRepo{})

	_, err := svc.Match(context.Background(), "   ", "en", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestMatch_ChestPainEndToEnd(t *testing.T) {
	cardiologist := verifiedCaregiver("cardio")
	cardiologist.Specializations = []string{"Cardiology"}
	cardiologist.ProviderType = entities.ProviderTypeDoctor
	cardiologist.ExperienceYears = 10
	cardiologist.Rating = 4.5

	generalist := verifiedCaregiver("general")
	generalist.Specializations = []string{"General Medicine"}
	generalist.ProviderType = entities.ProviderTypeDoctor

	repo := &fakeCaregiverRepo{
		bySpecialization: []*entities.Caregiver{generalist, cardiologist},
	}
	svc := newMatchService(repo)

	resp, err := svc.Match(context.Background(), "I have chest pain", "en", nil)
	require.NoError(t, err)

	assert.Contains(t, resp.Intent.Specializations, "Cardiology")
	assert.True(t, resp.Intent.Urgency.AtLeast(entities.UrgencyHigh))
	assert.False(t, resp.FallbackUsed)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "cardio", resp.Results[0].Caregiver.ID)
	assert.Equal(t, 1, resp.Results[0].Rank)
}

func TestMatch_NonsenseQueryStillGetsResults(t *testing.T) {
	repo := &fakeCaregiverRepo{
		topByExperience: makeCaregivers("top", 2),
	}
	svc := newMatchService(repo)

	resp, err := svc.Match(context.Background(), "xyzabc nonsense", "en", nil)
	require.NoError(t, err)

	assert.True(t, resp.FallbackUsed)
	assert.NotEmpty(t, resp.Results)
	assert.InDelta(t, 0.6, resp.Intent.Confidence, 0.001)
}

func TestMatch_TruncatesToPageSize(t *testing.T) {
	repo := &fakeCaregiverRepo{
		bySpecialization: makeCaregivers("spec", 5),
	}
	svc := newMatchService(repo)

	resp, err := svc.Match(context.Background(), "chest pain", "en", nil)
	require.NoError(t, err)

	assert.Len(t, resp.Results, 3)
	assert.Equal(t, 3, resp.Results[len(resp.Results)-1].Rank)
}

func TestMatch_EmergencyAdvisoryMessage(t *testing.T) {
	repo := &fakeCaregiverRepo{
		bySpecialization: makeCaregivers("spec", 1),
	}
	svc := newMatchService(repo)

	resp, err := svc.Match(context.Background(), "severe chest pain emergency", "en", nil)
	require.NoError(t, err)

	assert.Equal(t, entities.UrgencyEmergency, resp.Intent.Urgency)
	assert.Contains(t, resp.Message, "emergency")
}

func TestMatch_NoResultsMessageLocalized(t *testing.T) {
	svc := newMatchService(&fakeCaregiverRepo{})

	resp, err := svc.Match(context.Background(), "बुखार", "hi", nil)
	require.NoError(t, err)

	assert.Empty(t, resp.Results)
	assert.Equal(t, noResultsMessage["hi"], resp.Message)
}

func TestMatch_StoreUnreachableSurfacesError(t *testing.T) {
	boom := apperrors.NewInternalError("db down", nil)
	repo := &fakeCaregiverRepo{
		specializationErr: boom,
		providerTypeErr:   boom,
		bioTermErr:        boom,
		topErr:            boom,
	}
	svc := newMatchService(repo)

	_, err := svc.Match(context.Background(), "chest pain", "en", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
}
