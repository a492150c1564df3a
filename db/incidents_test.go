package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-eduwatch/types"
)

func TestNormalizeDates(t *testing.T) {
	records := []types.SchoolIncident{
		{UID: "1", Date: "1/2/2006"},
		{UID: "2", Date: "2024-03-10"},
		{UID: "3", Date: "2024-03-10T15:04:05Z"},
		{UID: "4", Date: "not-a-date"},
		{UID: "5", Date: ""},
	}

	normalizeDates(records)

	// Every parseable layout lands on the ISO form, so the stored strings
	// sort chronologically.
	assert.Equal(t, "2006-01-02", records[0].Date)
	assert.Equal(t, "2024-03-10", records[1].Date)
	assert.Equal(t, "2024-03-10", records[2].Date)
	// Unparseable dates pass through untouched.
	assert.Equal(t, "not-a-date", records[3].Date)
	assert.Equal(t, "", records[4].Date)
}
