package entities

import (
	"strings"
	"time"
)

// ProviderType classifies the kind of caregiver a patient can be matched with.
type ProviderType string

const (
	ProviderTypeDoctor          ProviderType = "doctor"
	ProviderTypeNurse           ProviderType = "nurse"
	ProviderTypeTherapist       ProviderType = "therapist"
	ProviderTypeCommunityWorker ProviderType = "community_worker"

	// ProviderTypeAny is a hint value only, never stored on a caregiver.
	ProviderTypeAny ProviderType = "any"
)

// ParseProviderType coerces free-form input to a known provider type,
// defaulting to "any" for anything unrecognized.
func ParseProviderType(s string) ProviderType {
	switch ProviderType(strings.ToLower(strings.TrimSpace(s))) {
	case ProviderTypeDoctor:
		return ProviderTypeDoctor
	case ProviderTypeNurse:
		return ProviderTypeNurse
	case ProviderTypeTherapist:
		return ProviderTypeTherapist
	case ProviderTypeCommunityWorker:
		return ProviderTypeCommunityWorker
	default:
		return ProviderTypeAny
	}
}

// Caregiver represents a caregiver profile as read from the store.
// This core never writes caregivers; the record is owned by the
// provider onboarding system.
type Caregiver struct {
	ID              string       `json:"id" db:"id"`
	UserID          string       `json:"user_id" db:"user_id"`
	DisplayName     string       `json:"display_name" db:"display_name"`
	ProviderType    ProviderType `json:"provider_type" db:"provider_type"`
	Specializations []string     `json:"specializations" db:"-"`
	Bio             string       `json:"bio" db:"bio"`
	BioHindi        string       `json:"bio_hi,omitempty" db:"bio_hi"`
	ExperienceYears int          `json:"experience_years" db:"experience_years"`
	Rating          float64      `json:"rating" db:"rating"`
	TotalReviews    int          `json:"total_reviews" db:"total_reviews"`
	Location        *Location    `json:"location,omitempty" db:"-"`
	ConsultationFee *float64     `json:"consultation_fee,omitempty" db:"consultation_fee"`
	HomeVisitFee    *float64     `json:"home_visit_fee,omitempty" db:"home_visit_fee"`
	IsVerified      bool         `json:"is_verified" db:"is_verified"`
	IsActive        bool         `json:"is_active" db:"is_active"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// Eligible reports whether the caregiver may appear in match results.
// The store adapters already filter on this; the check exists so callers
// holding records from elsewhere honor the same invariant.
func (c *Caregiver) Eligible() bool {
	return c.IsActive && c.IsVerified
}

// LocalizedBio returns the bio text for a language, falling back to the
// default (English) bio when no translation exists.
func (c *Caregiver) LocalizedBio(language string) string {
	if language == "hi" && c.BioHindi != "" {
		return c.BioHindi
	}
	return c.Bio
}
