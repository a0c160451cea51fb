package auth

import (
	"unicode"
	"unicode/utf8"
)

// PasswordRequirement is one rule of the strength meter.
type PasswordRequirement struct {
	Label string
	Met   func(password string) bool
}

// Requirements is the fixed, ordered checklist shown under the register
// password field.
var Requirements = []PasswordRequirement{
	{Label: "At least 8 characters", Met: func(p string) bool { return utf8.RuneCountInString(p) >= PasswordMinLength }},
	{Label: "Contains a number", Met: containsRune(unicode.IsDigit)},
	{Label: "Contains a lowercase letter", Met: containsRune(unicode.IsLower)},
	{Label: "Contains an uppercase letter", Met: containsRune(unicode.IsUpper)},
	{Label: "Contains a special character", Met: containsRune(isSpecial)},
}

func containsRune(pred func(rune) bool) func(string) bool {
	return func(s string) bool {
		for _, r := range s {
			if pred(r) {
				return true
			}
		}
		return false
	}
}

func isSpecial(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
}

type RequirementStatus struct {
	Label string `json:"label"`
	Met   bool   `json:"met"`
}

// Strength is the result of scoring a password. Score is the number of
// satisfied requirements, 0..5. Entered is false only for an empty password.
type Strength struct {
	Requirements []RequirementStatus `json:"requirements"`
	Score        int                 `json:"score"`
	Entered      bool                `json:"entered"`
}

// Score evaluates password against Requirements.
func Score(password string) Strength {
	s := Strength{
		Requirements: make([]RequirementStatus, len(Requirements)),
		Entered:      password != "",
	}
	for i, req := range Requirements {
		met := req.Met(password)
		s.Requirements[i] = RequirementStatus{Label: req.Label, Met: met}
		if met {
			s.Score++
		}
	}
	return s
}

var strengthLabels = [...]string{
	"Enter a password",
	"Weak",
	"Weak",
	"Medium",
	"Strong",
	"Very strong",
}

var strengthColors = [...]string{
	"bg-border",
	"bg-red-500",
	"bg-orange-500",
	"bg-amber-500",
	"bg-yellow-400",
	"bg-green-500",
}

// Label names the score. A password that meets nothing, such as only
// spaces, is Weak rather than missing.
func (s Strength) Label() string {
	n := s.clamped()
	if n == 0 && s.Entered {
		return strengthLabels[1]
	}
	return strengthLabels[n]
}

// Color is the CSS class of the meter bar.
func (s Strength) Color() string {
	return strengthColors[s.clamped()]
}

// Percent is the width of the meter bar.
func (s Strength) Percent() int {
	return s.clamped() * 100 / len(Requirements)
}

func (s Strength) clamped() int {
	switch {
	case s.Score < 0:
		return 0
	case s.Score > len(Requirements):
		return len(Requirements)
	}
	return s.Score
}
