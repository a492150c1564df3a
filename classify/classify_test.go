package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-eduwatch/types"
)

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		name       string
		casualties int
		killed     int
		injured    int
		want       types.Severity
	}{
		{"no harm", 0, 0, 0, types.Low},
		{"one injured", 1, 0, 1, types.Low},
		{"two injured", 2, 0, 2, types.Low},
		{"three injured", 3, 0, 3, types.Medium},
		{"nine injured", 9, 0, 9, types.Medium},
		{"ten injured", 10, 0, 10, types.High},
		{"ten casualties", 10, 0, 0, types.High},
		{"single death outranks injuries", 1, 1, 0, types.Critical},
		{"death with many injured", 45, 2, 43, types.Critical},
		{"casualties disagree with counts, casualties trusted", 12, 0, 1, types.High},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SeverityFor(tt.casualties, tt.killed, tt.injured))
		})
	}
}

func TestSeverityForNeverSkipsLevels(t *testing.T) {
	// Walk the injured axis: severity should be monotonic, never dropping as
	// the count grows.
	order := map[types.Severity]int{types.Low: 0, types.Medium: 1, types.High: 2, types.Critical: 3}
	prev := types.Low
	for injured := 0; injured <= 20; injured++ {
		got := SeverityFor(injured, 0, injured)
		assert.GreaterOrEqual(t, order[got], order[prev], "severity dropped at injured=%d", injured)
		prev = got
	}
}

func TestInstitutionTypeFor(t *testing.T) {
	tests := []struct {
		name       string
		schoolType string
		lowGrade   string
		highGrade  string
		want       types.InstitutionType
	}{
		{"elementary by high grade", "Elementary", "K", "5", types.Elementary},
		{"middle by high grade", "Public", "6", "8", types.Middle},
		{"high school by high grade", "Public", "9", "12", types.HighSchool},
		{"boundary grade 5", "", "PK", "5", types.Elementary},
		{"boundary grade 6", "", "1", "6", types.Middle},
		{"boundary grade 8", "", "6", "8", types.Middle},
		{"boundary grade 9", "", "9", "9", types.HighSchool},
		{"university keyword", "University", "", "", types.University},
		{"college keyword anywhere", "Community College", "", "", types.University},
		{"university beats grades", "University of Texas", "9", "12", types.University},
		{"case-insensitive keyword", "STATE UNIVERSITY", "", "", types.University},
		{"no digits defaults to high", "Public", "K", "K", types.HighSchool},
		{"empty grades default to high", "Public", "", "", types.HighSchool},
		{"digits embedded in label", "Public", "K", "Grade 8", types.Middle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InstitutionTypeFor(tt.schoolType, tt.lowGrade, tt.highGrade))
		})
	}
}

func TestGradeNumber(t *testing.T) {
	assert.Equal(t, 12, gradeNumber("12", 0))
	assert.Equal(t, 5, gradeNumber("5th", 0))
	assert.Equal(t, 8, gradeNumber("Grade 8", 0))
	assert.Equal(t, 12, gradeNumber("K", 12))
	assert.Equal(t, 12, gradeNumber("", 12))
	// Only the first digit run counts.
	assert.Equal(t, 6, gradeNumber("6-8", 0))
}
