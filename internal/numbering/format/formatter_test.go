package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestNextFirstSequence(t *testing.T) {
	ref := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	got := Next("FAC-{nom_client}-{annee}-{mois}#{numero}", ref, "Dupont", nil)

	assert.Equal(t, "FAC-Dupont-2024-03#001", got)
}

func TestNextIncrementsLastSequence(t *testing.T) {
	ref := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	got := Next("FAC#{numero}", ref, "Dupont", intPtr(7))

	assert.Equal(t, "FAC#008", got)
}

func TestNextSequenceOverflowsPadding(t *testing.T) {
	ref := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	got := Next("FAC#{numero}", ref, "Dupont", intPtr(999))

	assert.Equal(t, "FAC#1000", got)
}

func TestNextLeavesNoKnownTokens(t *testing.T) {
	ref := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)

	got := Next("{nom_client}/{annee}/{mois}/{numero}", ref, "Martin", nil)

	for _, token := range []string{TokenClient, TokenYear, TokenMonth, TokenSequence} {
		assert.NotContains(t, got, token)
	}
	assert.Equal(t, "Martin/2025/12/001", got)
}

func TestNextReplacesFirstOccurrenceOnly(t *testing.T) {
	ref := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

	got := Next("{numero}-{numero}", ref, "Dupont", nil)

	assert.Equal(t, "001-{numero}", got)
}

func TestNextKeepsUnknownTokensVerbatim(t *testing.T) {
	ref := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

	got := Next("{agence}-{numero}", ref, "Dupont", nil)

	assert.True(t, strings.HasPrefix(got, "{agence}-"))
	assert.Equal(t, "{agence}-001", got)
}
