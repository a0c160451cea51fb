package auth_test

import (
	"strings"
	"testing"

	"github.com/evernight/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	testCases := []struct {
		password string
		score    int
		label    string
	}{
		{"", 0, "Enter a password"},
		{"   ", 0, "Weak"},
		{"\t", 0, "Weak"},
		{"a", 1, "Weak"},
		{"        ", 1, "Weak"},
		{"password", 2, "Weak"},
		{"P@ss", 3, "Medium"},
		{"Password", 3, "Medium"},
		{"Password1", 4, "Strong"},
		{"Password1!", 5, "Very strong"},
	}

	for _, tc := range testCases {
		t.Run(tc.password, func(t *testing.T) {
			s := auth.Score(tc.password)
			assert.Equal(t, tc.score, s.Score)
			assert.Equal(t, tc.label, s.Label())
		})
	}
}

func TestScoreAllRequirementsMet(t *testing.T) {
	s := auth.Score("Password1!")
	require.Len(t, s.Requirements, 5)
	for _, r := range s.Requirements {
		assert.True(t, r.Met, r.Label)
	}
	assert.Equal(t, 5, s.Score)
}

func TestScoreCountsSatisfiedRequirements(t *testing.T) {
	passwords := []string{
		"", "x", "X", "1", "!", "abcdefgh", "ABCDEFGH", "12345678",
		"!!!!!!!!", "aB3$", "correct horse battery staple", "Ünïcödé9#",
		strings.Repeat("Zz9?", 70),
	}

	for _, p := range passwords {
		s := auth.Score(p)
		met := 0
		for i, req := range auth.Requirements {
			got := req.Met(p)
			assert.Equal(t, got, s.Requirements[i].Met, "requirement %q for %q", req.Label, p)
			if got {
				met++
			}
		}
		assert.Equal(t, met, s.Score, "password %q", p)
	}
}

func TestRequirementOrder(t *testing.T) {
	labels := make([]string, 0, len(auth.Requirements))
	for _, r := range auth.Requirements {
		labels = append(labels, r.Label)
	}
	assert.Equal(t, []string{
		"At least 8 characters",
		"Contains a number",
		"Contains a lowercase letter",
		"Contains an uppercase letter",
		"Contains a special character",
	}, labels)
}

func TestStrengthDisplay(t *testing.T) {
	testCases := []struct {
		score   int
		color   string
		percent int
	}{
		{0, "bg-border", 0},
		{1, "bg-red-500", 20},
		{2, "bg-orange-500", 40},
		{3, "bg-amber-500", 60},
		{4, "bg-yellow-400", 80},
		{5, "bg-green-500", 100},
	}

	for _, tc := range testCases {
		s := auth.Strength{Score: tc.score}
		assert.Equal(t, tc.color, s.Color(), "score %d", tc.score)
		assert.Equal(t, tc.percent, s.Percent(), "score %d", tc.score)
	}

	assert.Equal(t, "Enter a password", auth.Strength{Score: -1}.Label())
	assert.Equal(t, "Very strong", auth.Strength{Score: 9}.Label())
}
