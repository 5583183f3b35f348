package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCategory("X")
	assert.Error(t, err)
	_, err = ParseCategory("d")
	assert.Error(t, err, "category codes are case sensitive")
}

func TestTallyGetInc(t *testing.T) {
	var tally Tally
	tally.Inc(CategoryD)
	tally.Inc(CategoryD)
	tally.Inc(CategoryS)

	assert.Equal(t, 2, tally.Get(CategoryD))
	assert.Equal(t, 0, tally.Get(CategoryI))
	assert.Equal(t, 1, tally.Get(CategoryS))
	assert.Equal(t, 3, tally.Total())
}

func TestTallyDominantTieBreak(t *testing.T) {
	// A later equal score must not displace an earlier maximum.
	tally := Tally{D: 3, I: 3, S: 1, C: 0}
	dominant, ok := tally.Dominant()
	require.True(t, ok)
	assert.Equal(t, CategoryD, dominant)

	tally = Tally{D: 1, I: 2, S: 2, C: 2}
	dominant, ok = tally.Dominant()
	require.True(t, ok)
	assert.Equal(t, CategoryI, dominant)
}

func TestTallyDominantAllZero(t *testing.T) {
	var tally Tally
	_, ok := tally.Dominant()
	assert.False(t, ok, "an all-zero tally has no dominant category")
}

func TestTallyDominantSingle(t *testing.T) {
	tally := Tally{C: 1}
	dominant, ok := tally.Dominant()
	require.True(t, ok)
	assert.Equal(t, CategoryC, dominant)
}
