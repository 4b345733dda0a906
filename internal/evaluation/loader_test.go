package evaluation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevacare/caregiver-match/internal/domain/entities"
)

func TestLoadGoldenQueries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "golden.json")
	data := `[
		{
			"id": "gq-1",
			"query": "chest pain",
			"language": "en",
			"expected_specializations": ["Cardiology"],
			"expected_provider_type": "doctor",
			"min_urgency": "high",
			"difficulty": "easy"
		}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	queries, err := LoadGoldenQueries(path)
	require.NoError(t, err)
	require.Len(t, queries, 1)

	assert.Equal(t, "gq-1", queries[0].ID)
	assert.Equal(t, entities.UrgencyHigh, queries[0].MinUrgency)
	assert.Equal(t, []string{"Cardiology"}, queries[0].ExpectedSpecializations)
}

func TestLoadGoldenQueries_MissingFile(t *testing.T) {
	_, err := LoadGoldenQueries(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestValidateGoldenQueries(t *testing.T) {
	valid := GoldenQuery{ID: "a", Query: "fever", Language: "en", Difficulty: "easy"}

	t.Run("valid set", func(t *testing.T) {
		assert.NoError(t, ValidateGoldenQueries([]GoldenQuery{valid}))
	})

	t.Run("missing id", func(t *testing.T) {
		q := valid
		q.ID = ""
		assert.Error(t, ValidateGoldenQueries([]GoldenQuery{q}))
	})

	t.Run("duplicate id", func(t *testing.T) {
		assert.Error(t, ValidateGoldenQueries([]GoldenQuery{valid, valid}))
	})

	t.Run("missing query text", func(t *testing.T) {
		q := valid
		q.Query = ""
		assert.Error(t, ValidateGoldenQueries([]GoldenQuery{q}))
	})

	t.Run("unsupported language", func(t *testing.T) {
		q := valid
		q.Language = "fr"
		assert.Error(t, ValidateGoldenQueries([]GoldenQuery{q}))
	})

	t.Run("invalid difficulty", func(t *testing.T) {
		q := valid
		q.Difficulty = "brutal"
		assert.Error(t, ValidateGoldenQueries([]GoldenQuery{q}))
	})
}
