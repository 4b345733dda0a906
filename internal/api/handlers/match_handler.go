package handlers

import (
	"net/http"
	"strconv"

	"github.com/sevacare/caregiver-match/internal/application/services"
	"github.com/sevacare/caregiver-match/internal/domain/entities"
)

// MatchHandler handles match-related HTTP requests
type MatchHandler struct {
	matchService     *services.MatchService
	analyticsService *services.MatchAnalyticsService
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchService *services.MatchService, analyticsService *services.MatchAnalyticsService) *MatchHandler {
	return &MatchHandler{
		matchService:     matchService,
		analyticsService: analyticsService,
	}
}

// Match handles GET /api/match?query=...&lang=...&lat=...&lon=...
func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := q.Get("query")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	location := parseLocation(q.Get("lat"), q.Get("lon"))

	response, err := h.matchService.Match(r.Context(), query, q.Get("lang"), location)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, response)
}

// GetFallbackQueries handles GET /api/analytics/fallback-queries
func (h *MatchHandler) GetFallbackQueries(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	events, err := h.analyticsService.FallbackQueries(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"queries": events,
		"count":   len(events),
	})
}

// parseLocation returns coordinates only when both halves parse; a single
// valid coordinate is as useless as none.
func parseLocation(latRaw, lonRaw string) *entities.Location {
	if latRaw == "" || lonRaw == "" {
		return nil
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		return nil
	}
	return &entities.Location{Latitude: lat, Longitude: lon}
}
