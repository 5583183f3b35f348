// Package dataset loads the static question bank and profile catalog
// bundled with the binary. Both are immutable after startup; invariants
// on the data are enforced at load time so a bad edit to the JSON fails
// fast instead of skewing scores.
package dataset

import (
	"encoding/json"
	"fmt"

	"github.com/iqbalrpambudi/disc-examination/internal/model"
)

// Bank is the immutable set of assessment questions.
type Bank struct {
	questions []model.Question
}

// Questions returns the full question list. Callers must not mutate it.
func (b *Bank) Questions() []model.Question {
	return b.questions
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Catalog maps each category to its descriptive profile.
type Catalog struct {
	profiles map[model.Category]model.Profile
}

// Profile returns the profile for a category. The load-time invariant
// guarantees every category has exactly one.
func (c *Catalog) Profile(cat model.Category) model.Profile {
	return c.profiles[cat]
}

// LoadBank parses and validates a question bank from JSON.
func LoadBank(data []byte) (*Bank, error) {
	var questions []model.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}

	seen := make(map[int]bool, len(questions))
	for _, q := range questions {
		if seen[q.ID] {
			return nil, fmt.Errorf("duplicate question id %d", q.ID)
		}
		seen[q.ID] = true

		if len(q.Options) != len(model.Categories) {
			return nil, fmt.Errorf("question %d has %d options, want %d", q.ID, len(q.Options), len(model.Categories))
		}
		for _, cat := range model.Categories {
			if !q.HasOption(cat) {
				return nil, fmt.Errorf("question %d is missing a %s option", q.ID, cat)
			}
		}
	}

	return &Bank{questions: questions}, nil
}

// LoadCatalog parses and validates a profile catalog from JSON. The
// catalog must cover every category exactly once, with no gaps and no duplicates.
func LoadCatalog(data []byte) (*Catalog, error) {
	var raw map[string]model.Profile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse profile catalog: %w", err)
	}

	profiles := make(map[model.Category]model.Profile, len(model.Categories))
	for key, p := range raw {
		cat, err := model.ParseCategory(key)
		if err != nil {
			return nil, fmt.Errorf("profile catalog: %w", err)
		}
		p.Category = cat
		profiles[cat] = p
	}

	for _, cat := range model.Categories {
		p, ok := profiles[cat]
		if !ok {
			return nil, fmt.Errorf("profile catalog is missing category %s", cat)
		}
		if p.DisplayName == "" || p.Title == "" || p.Description == "" {
			return nil, fmt.Errorf("profile %s has empty required fields", cat)
		}
	}

	return &Catalog{profiles: profiles}, nil
}

// Load returns the embedded question bank and profile catalog.
func Load() (*Bank, *Catalog, error) {
	bank, err := LoadBank(questionsJSON)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := LoadCatalog(profilesJSON)
	if err != nil {
		return nil, nil, err
	}
	return bank, catalog, nil
}
