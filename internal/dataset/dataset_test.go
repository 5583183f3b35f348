package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqbalrpambudi/disc-examination/internal/model"
)

func TestLoadEmbeddedData(t *testing.T) {
	bank, catalog, err := Load()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, bank.Len(), 10, "bank must cover the default draw size")

	for _, cat := range model.Categories {
		p := catalog.Profile(cat)
		assert.Equal(t, cat, p.Category)
		assert.NotEmpty(t, p.DisplayName)
		assert.NotEmpty(t, p.Strengths)
		assert.NotEmpty(t, p.Challenges)
	}
}

func TestLoadBankRejectsDuplicateIDs(t *testing.T) {
	data := []byte(`[
		{"id": 1, "question": "q", "options": [
			{"text": "a", "type": "D"}, {"text": "b", "type": "I"},
			{"text": "c", "type": "S"}, {"text": "d", "type": "C"}]},
		{"id": 1, "question": "q", "options": [
			{"text": "a", "type": "D"}, {"text": "b", "type": "I"},
			{"text": "c", "type": "S"}, {"text": "d", "type": "C"}]}
	]`)
	_, err := LoadBank(data)
	assert.ErrorContains(t, err, "duplicate question id")
}

func TestLoadBankRejectsMissingCategory(t *testing.T) {
	data := []byte(`[
		{"id": 1, "question": "q", "options": [
			{"text": "a", "type": "D"}, {"text": "b", "type": "D"},
			{"text": "c", "type": "S"}, {"text": "d", "type": "C"}]}
	]`)
	_, err := LoadBank(data)
	assert.ErrorContains(t, err, "missing a I option")
}

func TestLoadBankRejectsEmpty(t *testing.T) {
	_, err := LoadBank([]byte(`[]`))
	assert.Error(t, err)
}

func TestLoadCatalogRejectsGaps(t *testing.T) {
	data := []byte(`{
		"D": {"name": "Dominance", "title": "t", "description": "d", "work_style": "w",
			"strengths": ["s"], "challenges": ["c"]}
	}`)
	_, err := LoadCatalog(data)
	assert.ErrorContains(t, err, "missing category")
}

func TestLoadCatalogRejectsUnknownCategory(t *testing.T) {
	data := []byte(`{
		"Z": {"name": "n", "title": "t", "description": "d", "work_style": "w",
			"strengths": ["s"], "challenges": ["c"]}
	}`)
	_, err := LoadCatalog(data)
	assert.ErrorContains(t, err, "unknown category")
}
