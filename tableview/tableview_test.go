package tableview

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-eduwatch/types"
)

func tableFixture(n int) []types.Incident {
	incidents := make([]types.Incident, 0, n)
	for i := 0; i < n; i++ {
		date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		incidents = append(incidents, types.Incident{
			ID:              fmt.Sprintf("inc-%02d", i),
			Date:            date.Format("2006-01-02"),
			InstitutionName: fmt.Sprintf("School %02d", i),
			City:            "Austin",
			State:           "TX",
			AffectedCount:   i,
			Source:          types.SourceLabel,
			Severity:        types.Low,
			InstitutionType: types.HighSchool,
			OccurredAt:      date,
			HasDate:         true,
		})
	}
	return incidents
}

func TestQueryPagination(t *testing.T) {
	incidents := tableFixture(27)

	page1, err := Query(incidents, "", SortByID, Ascending, 1, 10)
	assert.NoError(t, err)
	assert.Len(t, page1.Rows, 10)
	assert.Equal(t, 27, page1.TotalCount)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Equal(t, "inc-00", page1.Rows[0].ID)

	page3, err := Query(incidents, "", SortByID, Ascending, 3, 10)
	assert.NoError(t, err)
	assert.Len(t, page3.Rows, 7)
	assert.Equal(t, "inc-26", page3.Rows[6].ID)

	// Past the end: empty rows, same totals.
	page4, err := Query(incidents, "", SortByID, Ascending, 4, 10)
	assert.NoError(t, err)
	assert.Empty(t, page4.Rows)
	assert.Equal(t, 3, page4.TotalPages)
	assert.Equal(t, 27, page4.TotalCount)
}

func TestQueryEmptySetStillHasOnePage(t *testing.T) {
	page, err := Query(nil, "", SortByDate, Descending, 1, 25)
	assert.NoError(t, err)
	assert.Empty(t, page.Rows)
	assert.Equal(t, 0, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
}

func TestQueryInvalidArguments(t *testing.T) {
	incidents := tableFixture(3)

	_, err := Query(incidents, "", SortByDate, Descending, 0, 10)
	assert.Error(t, err)
	_, err = Query(incidents, "", SortByDate, Descending, -1, 10)
	assert.Error(t, err)
	_, err = Query(incidents, "", SortByDate, Descending, 1, 0)
	assert.Error(t, err)
}

func TestSearchCaseInsensitive(t *testing.T) {
	incidents := []types.Incident{
		{ID: "1", InstitutionName: "Lakeside High", City: "Austin", State: "TX"},
		{ID: "2", InstitutionName: "Hillcrest Elementary", City: "Dallas", State: "TX"},
		{ID: "3", InstitutionName: "Río Vista", City: "El Paso", State: "TX", Description: "targeted - 0 killed, 1 injured"},
	}

	assert.Len(t, Search(incidents, "LAKESIDE"), 1)
	assert.Len(t, Search(incidents, "dallas"), 1)
	assert.Len(t, Search(incidents, "tx"), 3)
	assert.Len(t, Search(incidents, "targeted"), 1)
	assert.Len(t, Search(incidents, "nowhere"), 0)
	assert.Len(t, Search(incidents, ""), 3)
}

func TestSortIsStableAndNonDestructive(t *testing.T) {
	incidents := []types.Incident{
		{ID: "b", City: "Austin", AffectedCount: 2},
		{ID: "a", City: "Austin", AffectedCount: 1},
		{ID: "c", City: "Austin", AffectedCount: 2},
	}

	sorted := Sort(incidents, SortByCity, Ascending)
	// Equal keys keep their relative order.
	assert.Equal(t, "b", sorted[0].ID)
	assert.Equal(t, "a", sorted[1].ID)
	assert.Equal(t, "c", sorted[2].ID)
	// The input slice is untouched.
	assert.Equal(t, "b", incidents[0].ID)

	byCount := Sort(incidents, SortByAffectedCount, Descending)
	assert.Equal(t, "b", byCount[0].ID)
	assert.Equal(t, "c", byCount[1].ID)
	assert.Equal(t, "a", byCount[2].ID)
}

func TestSortByDateUsesTimestamps(t *testing.T) {
	incidents := tableFixture(5)
	sorted := Sort(incidents, SortByDate, Descending)
	assert.Equal(t, "inc-04", sorted[0].ID)
	assert.Equal(t, "inc-00", sorted[4].ID)
}

func TestSortUnknownFieldKeepsOrder(t *testing.T) {
	incidents := tableFixture(3)
	sorted := Sort(incidents, "enrollment", Descending)
	assert.Equal(t, "inc-00", sorted[0].ID)
	assert.Equal(t, "inc-02", sorted[2].ID)
}

func TestExportCSV(t *testing.T) {
	incidents := []types.Incident{
		{
			ID:              "1",
			Date:            "2024-03-10",
			InstitutionName: "Lakeside, Middle School", // embedded delimiter
			City:            "Austin",
			State:           "TX",
			InstitutionType: types.Middle,
			Severity:        types.Critical,
			AffectedCount:   45,
			Latitude:        30.27,
			Longitude:       -97.74,
			Source:          types.SourceLabel,
			Description:     "targeted - 2 killed, 43 injured",
		},
	}

	out, err := ExportCSV(incidents)
	assert.NoError(t, err)

	// A standard reader round-trips the output despite the embedded comma.
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "Lakeside, Middle School", rows[1][2])
	assert.Equal(t, "Secundaria", rows[1][5])
	assert.Equal(t, "Crítico", rows[1][6])
	assert.Equal(t, "45", rows[1][7])
}

func TestExportCSVEmptySet(t *testing.T) {
	out, err := ExportCSV(nil)
	assert.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}

func TestExportJSON(t *testing.T) {
	incidents := tableFixture(2)
	out, err := ExportJSON(incidents)
	assert.NoError(t, err)

	var back []types.Incident
	assert.NoError(t, json.Unmarshal([]byte(out), &back))
	assert.Len(t, back, 2)
	assert.Equal(t, "inc-00", back[0].ID)
	assert.Equal(t, types.SourceLabel, back[0].Source)
}
