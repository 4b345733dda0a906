package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/sevacare/caregiver-match/internal/domain/entities"
	"github.com/sevacare/caregiver-match/internal/domain/repositories"
	"github.com/sevacare/caregiver-match/internal/infrastructure/clients/postgres"
	apperrors "github.com/sevacare/caregiver-match/pkg/errors"
)

var caregiverColumns = []interface{}{
	"id", "user_id", "display_name", "provider_type", "specializations",
	"bio", "bio_hi", "experience_years", "rating", "total_reviews",
	"latitude", "longitude", "consultation_fee", "home_visit_fee",
	"is_verified", "is_active", "created_at", "updated_at",
}

// CaregiverAdapter implements CaregiverRepository against Postgres.
type CaregiverAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCaregiverAdapter creates a new caregiver adapter
func NewCaregiverAdapter(client *postgres.Client) repositories.CaregiverRepository {
	return &CaregiverAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// eligible restricts a dataset to records the matching pipeline may see.
func eligible(ds *goqu.SelectDataset) *goqu.SelectDataset {
	return ds.Where(goqu.Ex{"is_active": true, "is_verified": true})
}

// ranked applies the deterministic ordering every finder shares.
func ranked(ds *goqu.SelectDataset) *goqu.SelectDataset {
	return ds.Order(
		goqu.I("experience_years").Desc(),
		goqu.I("rating").Desc(),
		goqu.I("id").Asc(),
	)
}

// GetByID retrieves a caregiver by ID
func (a *CaregiverAdapter) GetByID(ctx context.Context, id string) (*entities.Caregiver, error) {
	query, args, err := a.db.Select(caregiverColumns...).
		From("caregivers").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	caregiver, err := scanCaregiverRow(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("caregiver with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get caregiver", err)
	}
	return caregiver, nil
}

// FindBySpecializations retrieves eligible caregivers whose specialization
// set intersects any of the given labels.
func (a *CaregiverAdapter) FindBySpecializations(ctx context.Context, specializations []string, limit int) ([]*entities.Caregiver, error) {
	if len(specializations) == 0 {
		return []*entities.Caregiver{}, nil
	}

	var terms []goqu.Expression
	for _, s := range specializations {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		terms = append(terms, goqu.L("specializations ILIKE ?", "%"+s+"%"))
	}
	if len(terms) == 0 {
		return []*entities.Caregiver{}, nil
	}

	ds := ranked(eligible(a.db.Select(caregiverColumns...).From("caregivers")).
		Where(goqu.Or(terms...))).
		Limit(uint(limit))

	return a.queryCaregivers(ctx, ds, "failed to find caregivers by specialization")
}

// FindByProviderType retrieves eligible caregivers of one provider type
func (a *CaregiverAdapter) FindByProviderType(ctx context.Context, providerType entities.ProviderType, limit int) ([]*entities.Caregiver, error) {
	ds := ranked(eligible(a.db.Select(caregiverColumns...).From("caregivers")).
		Where(goqu.Ex{"provider_type": string(providerType)})).
		Limit(uint(limit))

	return a.queryCaregivers(ctx, ds, "failed to find caregivers by provider type")
}

// FindByBioTerm retrieves eligible caregivers whose localized bio contains
// the term.
func (a *CaregiverAdapter) FindByBioTerm(ctx context.Context, term, language string, limit int) ([]*entities.Caregiver, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []*entities.Caregiver{}, nil
	}

	bioColumn := "bio"
	if language == "hi" {
		bioColumn = "bio_hi"
	}

	ds := ranked(eligible(a.db.Select(caregiverColumns...).From("caregivers")).
		Where(goqu.L(bioColumn+" ILIKE ?", "%"+term+"%"))).
		Limit(uint(limit))

	return a.queryCaregivers(ctx, ds, "failed to find caregivers by bio term")
}

// FindTopByExperience retrieves the most experienced eligible caregivers
// with no other filter.
func (a *CaregiverAdapter) FindTopByExperience(ctx context.Context, limit int) ([]*entities.Caregiver, error) {
	ds := ranked(eligible(a.db.Select(caregiverColumns...).From("caregivers"))).
		Limit(uint(limit))

	return a.queryCaregivers(ctx, ds, "failed to find top caregivers")
}

// List retrieves caregivers with filters
func (a *CaregiverAdapter) List(ctx context.Context, filter repositories.CaregiverFilter) ([]*entities.Caregiver, error) {
	ds := a.db.Select(caregiverColumns...).From("caregivers")

	if filter.OnlyEligible {
		ds = eligible(ds)
	}
	if filter.ProviderType != "" && filter.ProviderType != entities.ProviderTypeAny {
		ds = ds.Where(goqu.Ex{"provider_type": string(filter.ProviderType)})
	}

	ds = ranked(ds)
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	return a.queryCaregivers(ctx, ds, "failed to list caregivers")
}

// Create inserts a caregiver. Seed tooling only.
func (a *CaregiverAdapter) Create(ctx context.Context, caregiver *entities.Caregiver) error {
	now := time.Now()
	if caregiver.CreatedAt.IsZero() {
		caregiver.CreatedAt = now
	}
	caregiver.UpdatedAt = now

	record := goqu.Record{
		"id":               caregiver.ID,
		"user_id":          caregiver.UserID,
		"display_name":     caregiver.DisplayName,
		"provider_type":    string(caregiver.ProviderType),
		"specializations":  JoinSpecializations(caregiver.Specializations),
		"bio":              caregiver.Bio,
		"bio_hi":           sql.NullString{String: caregiver.BioHindi, Valid: caregiver.BioHindi != ""},
		"experience_years": caregiver.ExperienceYears,
		"rating":           caregiver.Rating,
		"total_reviews":    caregiver.TotalReviews,
		"latitude":         nullFloat(locationLat(caregiver.Location)),
		"longitude":        nullFloat(locationLon(caregiver.Location)),
		"consultation_fee": nullFloat(caregiver.ConsultationFee),
		"home_visit_fee":   nullFloat(caregiver.HomeVisitFee),
		"is_verified":      caregiver.IsVerified,
		"is_active":        caregiver.IsActive,
		"created_at":       caregiver.CreatedAt,
		"updated_at":       caregiver.UpdatedAt,
	}

	query, args, err := a.db.Insert("caregivers").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create caregiver", err)
	}
	return nil
}

func (a *CaregiverAdapter) queryCaregivers(ctx context.Context, ds *goqu.SelectDataset, errMsg string) ([]*entities.Caregiver, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError(errMsg, err)
	}
	defer rows.Close()

	caregivers := []*entities.Caregiver{}
	for rows.Next() {
		caregiver, err := scanCaregiverRow(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan caregiver", err)
		}
		caregivers = append(caregivers, caregiver)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating caregivers", err)
	}

	return caregivers, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanCaregiverRow is the single boundary where loose store payloads become
// the strict entity: NULL numerics default to zero, specializations arrive
// either as a Postgres array literal or a comma-joined string, and
// coordinates only materialize when both halves are present.
func scanCaregiverRow(row rowScanner) (*entities.Caregiver, error) {
	var (
		c               entities.Caregiver
		providerType    string
		specializations sql.NullString
		bioHindi        sql.NullString
		experience      sql.NullInt64
		rating          sql.NullFloat64
		totalReviews    sql.NullInt64
		lat, lon        sql.NullFloat64
		consultationFee sql.NullFloat64
		homeVisitFee    sql.NullFloat64
	)

	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.DisplayName,
		&providerType,
		&specializations,
		&c.Bio,
		&bioHindi,
		&experience,
		&rating,
		&totalReviews,
		&lat,
		&lon,
		&consultationFee,
		&homeVisitFee,
		&c.IsVerified,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.ProviderType = entities.ProviderType(providerType)
	c.Specializations = ParseSpecializations(specializations.String)
	c.BioHindi = bioHindi.String
	c.ExperienceYears = int(experience.Int64)
	c.Rating = rating.Float64
	c.TotalReviews = int(totalReviews.Int64)
	if lat.Valid && lon.Valid {
		c.Location = &entities.Location{Latitude: lat.Float64, Longitude: lon.Float64}
	}
	if consultationFee.Valid {
		fee := consultationFee.Float64
		c.ConsultationFee = &fee
	}
	if homeVisitFee.Valid {
		fee := homeVisitFee.Float64
		c.HomeVisitFee = &fee
	}

	return &c, nil
}

// ParseSpecializations accepts both storage shapes seen in the wild: a
// Postgres text[] literal like {Cardiology,"Elder Care"} and a plain
// comma-joined string.
func ParseSpecializations(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}
	raw = strings.TrimPrefix(raw, "{")
	raw = strings.TrimSuffix(raw, "}")

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"`)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinSpecializations is the write-side inverse of ParseSpecializations.
func JoinSpecializations(specializations []string) string {
	return strings.Join(specializations, ",")
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func locationLat(loc *entities.Location) *float64 {
	if loc == nil {
		return nil
	}
	return &loc.Latitude
}

func locationLon(loc *entities.Location) *float64 {
	if loc == nil {
		return nil
	}
	return &loc.Longitude
}
