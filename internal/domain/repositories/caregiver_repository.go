package repositories

import (
	"context"

	"github.com/sevacare/caregiver-match/internal/domain/entities"
)

// CaregiverRepository defines the query primitives the matching pipeline is
// allowed to assume of the caregiver store. Every finder returns only
// active and verified caregivers, ordered by experience descending, rating
// descending, then ID ascending so repeated queries are deterministic.
type CaregiverRepository interface {
	// GetByID retrieves a caregiver by ID regardless of eligibility
	GetByID(ctx context.Context, id string) (*entities.Caregiver, error)

	// FindBySpecializations retrieves eligible caregivers whose
	// specialization set intersects any of the given labels
	FindBySpecializations(ctx context.Context, specializations []string, limit int) ([]*entities.Caregiver, error)

	// FindByProviderType retrieves eligible caregivers of one provider type
	FindByProviderType(ctx context.Context, providerType entities.ProviderType, limit int) ([]*entities.Caregiver, error)

	// FindByBioTerm retrieves eligible caregivers whose localized bio
	// contains the term (case-insensitive substring)
	FindByBioTerm(ctx context.Context, term, language string, limit int) ([]*entities.Caregiver, error)

	// FindTopByExperience retrieves the most experienced eligible
	// caregivers with no other filter
	FindTopByExperience(ctx context.Context, limit int) ([]*entities.Caregiver, error)

	// List retrieves caregivers with filters, for the read-only display
	// endpoints
	List(ctx context.Context, filter CaregiverFilter) ([]*entities.Caregiver, error)

	// Create inserts a caregiver (seed tooling only; the matching core
	// never writes)
	Create(ctx context.Context, caregiver *entities.Caregiver) error
}

// CaregiverFilter defines filters for listing caregivers
type CaregiverFilter struct {
	ProviderType entities.ProviderType
	OnlyEligible bool
	Limit        int
	Offset       int
}
