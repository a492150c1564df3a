package classify

import (
	"strings"

	"go-eduwatch/types"
)

const (
	// Casualty thresholds for the severity ladder.
	highCasualtyThreshold   = 10
	mediumCasualtyThreshold = 3

	// Grade ceilings per institution level.
	elementaryMaxGrade = 5
	middleMaxGrade     = 8

	// Assumed when the high-grade field carries no digits at all.
	defaultHighGrade = 12
)

// SeverityFor maps raw casualty counts to the four-level severity enum.
// First match wins; a single death outranks any injury count. The casualties
// field is trusted as given even when it disagrees with killed+injured.
func SeverityFor(casualties, killed, injured int) types.Severity {
	if killed > 0 {
		return types.Critical
	}
	if casualties >= highCasualtyThreshold || injured >= highCasualtyThreshold {
		return types.High
	}
	if casualties >= mediumCasualtyThreshold || injured >= mediumCasualtyThreshold {
		return types.Medium
	}
	return types.Low
}

// InstitutionTypeFor maps the free-form school type and grade range onto the
// institution-type enum. Grade labels like "K" or "PK" carry no digits and
// fall through to the defaults, so malformed input degrades to "high" rather
// than erroring.
func InstitutionTypeFor(schoolType, lowGrade, highGrade string) types.InstitutionType {
	label := strings.ToLower(schoolType)
	if strings.Contains(label, "university") || strings.Contains(label, "college") {
		return types.University
	}

	// Only the high bound decides the level; the low bound ("K", "PK", ...)
	// is accepted for the contract but never moves the classification.
	highGradeNum := gradeNumber(highGrade, defaultHighGrade)

	switch {
	case highGradeNum <= elementaryMaxGrade:
		return types.Elementary
	case highGradeNum <= middleMaxGrade:
		return types.Middle
	default:
		return types.HighSchool
	}
}

// gradeNumber extracts the first run of digits from a grade label, returning
// fallback when there is none.
func gradeNumber(grade string, fallback int) int {
	n := 0
	seen := false
	for _, r := range grade {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
			seen = true
		} else if seen {
			break
		}
	}
	if !seen {
		return fallback
	}
	return n
}
