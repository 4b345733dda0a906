package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevacare/caregiver-match/internal/application/services"
	"github.com/sevacare/caregiver-match/internal/domain/entities"
	"github.com/sevacare/caregiver-match/internal/domain/repositories"
	apperrors "github.com/sevacare/caregiver-match/pkg/errors"
)

type stubCaregiverRepo struct {
	caregivers []*entities.Caregiver
	err        error
}

func (s *stubCaregiverRepo) GetByID(ctx context.Context, id string) (*entities.Caregiver, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, c := range s.caregivers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("caregiver with id " + id + " not found")
}

func (s *stubCaregiverRepo) FindBySpecializations(ctx context.Context, specializations []string, limit int) ([]*entities.Caregiver, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.caregivers, nil
}

func (s *stubCaregiverRepo) FindByProviderType(ctx context.Context, providerType entities.ProviderType, limit int) ([]*entities.Caregiver, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.caregivers, nil
}

func (s *stubCaregiverRepo) FindByBioTerm(ctx context.Context, term, language string, limit int) ([]*entities.Caregiver, error) {
	if s.err != nil {
		return nil, s.err
	}
	return nil, nil
}

func (s *stubCaregiverRepo) FindTopByExperience(ctx context.Context, limit int) ([]*entities.Caregiver, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.caregivers, nil
}

func (s *stubCaregiverRepo) List(ctx context.Context, filter repositories.CaregiverFilter) ([]*entities.Caregiver, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.caregivers, nil
}

func (s *stubCaregiverRepo) Create(ctx context.Context, caregiver *entities.Caregiver) error {
	return nil
}

func newTestMatchHandler(repo repositories.CaregiverRepository) *MatchHandler {
	intents := services.NewIntentService(
		services.NewPatternExtractor(services.DefaultIntentRules(), services.ControlledSpecializations),
		nil, nil, 60,
	)
	search := services.NewCandidateSearchService(repo, services.CandidateSearchOptions{})
	ranker := services.NewMatchRankingService(services.DefaultScoreWeights())
	analytics := services.NewMatchAnalyticsService(nil)
	matchService := services.NewMatchService(intents, search, ranker, analytics, nil, 10)
	return NewMatchHandler(matchService, analytics)
}

func TestMatchHandler_MissingQuery(t *testing.T) {
	handler := newTestMatchHandler(&stubCaregiverRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/match", nil)
	rec := httptest.NewRecorder()

	handler.Match(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "query")
}

func TestMatchHandler_Success(t *testing.T) {
	repo := &stubCaregiverRepo{
		caregivers: []*entities.Caregiver{
			{
				ID:              "cg-1",
				DisplayName:     "Dr. Asha Verma",
				ProviderType:    entities.ProviderTypeDoctor,
				Specializations: []string{"Cardiology"},
				ExperienceYears: 12,
				Rating:          4.7,
				IsVerified:      true,
				IsActive:        true,
			},
		},
	}
	handler := newTestMatchHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/match?query=chest+pain&lang=en", nil)
	rec := httptest.NewRecorder()

	handler.Match(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body entities.MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.Results, 1)
	assert.Equal(t, "cg-1", body.Results[0].Caregiver.ID)
	assert.Equal(t, 1, body.Results[0].Rank)
	assert.NotEmpty(t, body.Results[0].Reason)
	assert.False(t, body.FallbackUsed)
	require.NotNil(t, body.Intent)
	assert.Contains(t, body.Intent.Specializations, "Cardiology")
}

func TestMatchHandler_LocationParsing(t *testing.T) {
	repo := &stubCaregiverRepo{
		caregivers: []*entities.Caregiver{
			{
				ID:              "cg-near",
				Specializations: []string{"Cardiology"},
				Location:        &entities.Location{Latitude: 28.60, Longitude: 77.20},
				IsVerified:      true,
				IsActive:        true,
			},
		},
	}
	handler := newTestMatchHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/match?query=chest+pain&lat=28.61&lon=77.21", nil)
	rec := httptest.NewRecorder()

	handler.Match(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body entities.MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	require.NotNil(t, body.Results[0].DistanceKm)
	assert.Less(t, *body.Results[0].DistanceKm, 5.0)
}

func TestMatchHandler_StoreUnreachable(t *testing.T) {
	repo := &stubCaregiverRepo{err: apperrors.NewInternalError("connection refused", nil)}
	handler := newTestMatchHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/match?query=chest+pain", nil)
	rec := httptest.NewRecorder()

	handler.Match(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body["error"], "connection refused")
}

func TestParseLocation(t *testing.T) {
	assert.Nil(t, parseLocation("", ""))
	assert.Nil(t, parseLocation("28.6", ""))
	assert.Nil(t, parseLocation("", "77.2"))
	assert.Nil(t, parseLocation("abc", "77.2"))

	loc := parseLocation("28.6", "77.2")
	require.NotNil(t, loc)
	assert.InDelta(t, 28.6, loc.Latitude, 0.001)
	assert.InDelta(t, 77.2, loc.Longitude, 0.001)
}

func TestMatchHandler_FallbackQueriesBadLimit(t *testing.T) {
	handler := newTestMatchHandler(&stubCaregiverRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/fallback-queries?limit=zero", nil)
	rec := httptest.NewRecorder()

	handler.GetFallbackQueries(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchHandler_FallbackQueriesEmpty(t *testing.T) {
	handler := newTestMatchHandler(&stubCaregiverRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/fallback-queries", nil)
	rec := httptest.NewRecorder()

	handler.GetFallbackQueries(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 0, body["count"])
}
