package handlers

import (
	"net/http"

	"github.com/sevacare/caregiver-match/internal/domain/entities"
	"github.com/sevacare/caregiver-match/internal/domain/repositories"
)

// CaregiverHandler handles caregiver-related HTTP requests
type CaregiverHandler struct {
	caregiverRepo repositories.CaregiverRepository
}

// NewCaregiverHandler creates a new caregiver handler
func NewCaregiverHandler(caregiverRepo repositories.CaregiverRepository) *CaregiverHandler {
	return &CaregiverHandler{
		caregiverRepo: caregiverRepo,
	}
}

// GetCaregiver handles GET /api/caregivers/{id}
func (h *CaregiverHandler) GetCaregiver(w http.ResponseWriter, r *http.Request) {
	caregiverID := r.PathValue("id")
	if caregiverID == "" {
		respondWithError(w, http.StatusBadRequest, "caregiver ID is required")
		return
	}

	caregiver, err := h.caregiverRepo.GetByID(r.Context(), caregiverID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, caregiver)
}

// ListCaregivers handles GET /api/caregivers
func (h *CaregiverHandler) ListCaregivers(w http.ResponseWriter, r *http.Request) {
	filter := repositories.CaregiverFilter{
		ProviderType: entities.ParseProviderType(r.URL.Query().Get("type")),
		OnlyEligible: true,
		Limit:        30,
	}

	caregivers, err := h.caregiverRepo.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"caregivers": caregivers,
		"count":      len(caregivers),
	})
}
