package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevacare/caregiver-match/internal/domain/entities"
	"github.com/sevacare/caregiver-match/internal/infrastructure/clients/postgres"
	apperrors "github.com/sevacare/caregiver-match/pkg/errors"
)

func setupMockAdapter(t *testing.T) (*CaregiverAdapter, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	adapter := NewCaregiverAdapter(postgres.NewClientFromDB(mockDB)).(*CaregiverAdapter)
	return adapter, mock
}

func caregiverColumnNames() []string {
	return []string{
		"id", "user_id", "display_name", "provider_type", "specializations",
		"bio", "bio_hi", "experience_years", "rating", "total_reviews",
		"latitude", "longitude", "consultation_fee", "home_visit_fee",
		"is_verified", "is_active", "created_at", "updated_at",
	}
}

func caregiverRow(id string) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, "user-" + id, "Dr. Test", "doctor", `{Cardiology,"General Medicine"}`,
		"Treats heart conditions", "हृदय विशेषज्ञ", int64(10), 4.5, int64(120),
		28.6139, 77.2090, 800.0, nil,
		true, true, now, now,
	}
}

func TestCaregiverAdapter_GetByID(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	rows := sqlmock.NewRows(caregiverColumnNames()).AddRow(caregiverRow("cg-1")...)
	mock.ExpectQuery(`SELECT .+ FROM "caregivers" WHERE`).WillReturnRows(rows)

	caregiver, err := adapter.GetByID(context.Background(), "cg-1")
	require.NoError(t, err)

	assert.Equal(t, "cg-1", caregiver.ID)
	assert.Equal(t, entities.ProviderTypeDoctor, caregiver.ProviderType)
	assert.Equal(t, []string{"Cardiology", "General Medicine"}, caregiver.Specializations)
	assert.Equal(t, 10, caregiver.ExperienceYears)
	require.NotNil(t, caregiver.Location)
	assert.InDelta(t, 28.6139, caregiver.Location.Latitude, 0.0001)
	require.NotNil(t, caregiver.ConsultationFee)
	assert.Nil(t, caregiver.HomeVisitFee)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCaregiverAdapter_GetByIDNotFound(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	mock.ExpectQuery(`SELECT .+ FROM "caregivers" WHERE`).WillReturnError(sql.ErrNoRows)

	_, err := adapter.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestCaregiverAdapter_FindBySpecializations(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	rows := sqlmock.NewRows(caregiverColumnNames()).
		AddRow(caregiverRow("cg-1")...).
		AddRow(caregiverRow("cg-2")...)
	mock.ExpectQuery(`SELECT .+ FROM "caregivers" WHERE .*specializations ILIKE`).WillReturnRows(rows)

	caregivers, err := adapter.FindBySpecializations(context.Background(), []string{"Cardiology"}, 10)
	require.NoError(t, err)
	assert.Len(t, caregivers, 2)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCaregiverAdapter_FindBySpecializationsEmptyInput(t *testing.T) {
	adapter, _ := setupMockAdapter(t)

	caregivers, err := adapter.FindBySpecializations(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.Empty(t, caregivers)

	caregivers, err = adapter.FindBySpecializations(context.Background(), []string{"  "}, 10)
	require.NoError(t, err)
	assert.Empty(t, caregivers)
}

func TestCaregiverAdapter_FindByBioTermUsesLocalizedColumn(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	rows := sqlmock.NewRows(caregiverColumnNames()).AddRow(caregiverRow("cg-1")...)
	mock.ExpectQuery(`SELECT .+ FROM "caregivers" WHERE .*bio_hi ILIKE`).WillReturnRows(rows)

	caregivers, err := adapter.FindByBioTerm(context.Background(), "बुखार", "hi", 10)
	require.NoError(t, err)
	assert.Len(t, caregivers, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCaregiverAdapter_NullNumericFieldsDefaultToZero(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	now := time.Now()
	rows := sqlmock.NewRows(caregiverColumnNames()).AddRow(
		"cg-sparse", "user-1", "New Caregiver", "nurse", nil,
		"", nil, nil, nil, nil,
		nil, nil, nil, nil,
		true, true, now, now,
	)
	mock.ExpectQuery(`SELECT .+ FROM "caregivers" WHERE`).WillReturnRows(rows)

	caregiver, err := adapter.GetByID(context.Background(), "cg-sparse")
	require.NoError(t, err)

	assert.Empty(t, caregiver.Specializations)
	assert.Zero(t, caregiver.ExperienceYears)
	assert.Zero(t, caregiver.Rating)
	assert.Nil(t, caregiver.Location)
	assert.Nil(t, caregiver.ConsultationFee)
}

func TestCaregiverAdapter_SingleCoordinateYieldsNoLocation(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	now := time.Now()
	rows := sqlmock.NewRows(caregiverColumnNames()).AddRow(
		"cg-half", "user-1", "Half Located", "doctor", "Cardiology",
		"bio", nil, int64(3), 4.0, int64(10),
		28.6, nil, nil, nil,
		true, true, now, now,
	)
	mock.ExpectQuery(`SELECT .+ FROM "caregivers" WHERE`).WillReturnRows(rows)

	caregiver, err := adapter.GetByID(context.Background(), "cg-half")
	require.NoError(t, err)
	assert.Nil(t, caregiver.Location)
}

func TestParseSpecializations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "postgres array literal",
			raw:  `{Cardiology,"Elder Care"}`,
			want: []string{"Cardiology", "Elder Care"},
		},
		{
			name: "comma joined",
			raw:  "Cardiology,General Medicine",
			want: []string{"Cardiology", "General Medicine"},
		},
		{
			name: "whitespace trimmed",
			raw:  " Cardiology , Neurology ",
			want: []string{"Cardiology", "Neurology"},
		},
		{
			name: "empty",
			raw:  "",
			want: []string{},
		},
		{
			name: "empty braces",
			raw:  "{}",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSpecializations(tt.raw))
		})
	}
}

func TestJoinSpecializations(t *testing.T) {
	joined := JoinSpecializations([]string{"Cardiology", "Elder Care"})
	assert.Equal(t, []string{"Cardiology", "Elder Care"}, ParseSpecializations(joined))
}
