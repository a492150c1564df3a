// Package tableview serves the sortable, searchable, paginated incident table
// and its CSV/JSON exports. Everything operates on an in-memory canonical set
// and produces fresh output; writing exports anywhere is the caller's job.
package tableview

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go-eduwatch/types"
)

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Sortable column keys, matching the canonical record's JSON field names.
const (
	SortByID              = "id"
	SortByDate            = "date"
	SortByInstitutionName = "institutionName"
	SortByCity            = "city"
	SortByState           = "state"
	SortByInstitutionType = "institutionType"
	SortBySeverity        = "severity"
	SortByAffectedCount   = "affectedCount"
	SortBySource          = "source"
)

// Page is one page of table rows plus the pagination totals.
type Page struct {
	Rows       []types.Incident `json:"rows"`
	TotalCount int              `json:"totalCount"`
	TotalPages int              `json:"totalPages"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
}

// Query searches, sorts and paginates the record set. Pages are 1-indexed;
// a page past the end returns an empty row set, and there is always at least
// one page even over zero rows. Invalid page numbers or sizes are a caller
// contract violation and return an error.
func Query(incidents []types.Incident, searchTerm, sortField string, dir SortDirection, page, pageSize int) (Page, error) {
	if page < 1 {
		return Page{}, fmt.Errorf("page must be >= 1, got %d", page)
	}
	if pageSize < 1 {
		return Page{}, fmt.Errorf("pageSize must be >= 1, got %d", pageSize)
	}

	rows := Sort(Search(incidents, searchTerm), sortField, dir)

	total := len(rows)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Rows:       rows[start:end],
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// Search keeps records where any of institution name, city, state, source or
// description contains the term, case-insensitively. An empty term matches
// everything. Input order is preserved.
func Search(incidents []types.Incident, term string) []types.Incident {
	if term == "" {
		return incidents
	}
	needle := strings.ToLower(term)
	out := make([]types.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if strings.Contains(strings.ToLower(inc.InstitutionName), needle) ||
			strings.Contains(strings.ToLower(inc.City), needle) ||
			strings.Contains(strings.ToLower(inc.State), needle) ||
			strings.Contains(strings.ToLower(inc.Source), needle) ||
			strings.Contains(strings.ToLower(inc.Description), needle) {
			out = append(out, inc)
		}
	}
	return out
}

// Sort returns a sorted copy. Dates compare by timestamp, strings compare
// case-insensitively, numbers numerically; equal keys keep their original
// relative order. An unknown field leaves the order untouched.
func Sort(incidents []types.Incident, field string, dir SortDirection) []types.Incident {
	sorted := make([]types.Incident, len(incidents))
	copy(sorted, incidents)

	cmp := comparatorFor(field)
	if cmp == nil {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if dir == Descending {
			return cmp(&sorted[j], &sorted[i])
		}
		return cmp(&sorted[i], &sorted[j])
	})
	return sorted
}

func comparatorFor(field string) func(a, b *types.Incident) bool {
	switch field {
	case SortByID:
		return func(a, b *types.Incident) bool { return ciLess(a.ID, b.ID) }
	case SortByDate:
		return func(a, b *types.Incident) bool { return a.OccurredAt.Before(b.OccurredAt) }
	case SortByInstitutionName:
		return func(a, b *types.Incident) bool { return ciLess(a.InstitutionName, b.InstitutionName) }
	case SortByCity:
		return func(a, b *types.Incident) bool { return ciLess(a.City, b.City) }
	case SortByState:
		return func(a, b *types.Incident) bool { return ciLess(a.State, b.State) }
	case SortByInstitutionType:
		return func(a, b *types.Incident) bool { return ciLess(string(a.InstitutionType), string(b.InstitutionType)) }
	case SortBySeverity:
		return func(a, b *types.Incident) bool { return ciLess(string(a.Severity), string(b.Severity)) }
	case SortByAffectedCount:
		return func(a, b *types.Incident) bool { return a.AffectedCount < b.AffectedCount }
	case SortBySource:
		return func(a, b *types.Incident) bool { return ciLess(a.Source, b.Source) }
	}
	return nil
}

func ciLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

// csvHeader is the fixed export column order.
var csvHeader = []string{
	"ID",
	"Fecha",
	"Institución",
	"Ciudad",
	"Estado",
	"Tipo de Institución",
	"Severidad",
	"Personas Afectadas",
	"Latitud",
	"Longitud",
	"Fuente",
	"Descripción",
}

// ExportCSV serializes the full record set (filtered and sorted, never
// paginated) as delimited text. Fields containing the delimiter are quoted by
// the writer, so a standard reader round-trips the output.
func ExportCSV(incidents []types.Incident) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}
	for i := range incidents {
		inc := &incidents[i]
		record := []string{
			inc.ID,
			inc.Date,
			inc.InstitutionName,
			inc.City,
			inc.State,
			inc.InstitutionType.Label(),
			inc.Severity.Label(),
			strconv.Itoa(inc.AffectedCount),
			strconv.FormatFloat(inc.Latitude, 'f', -1, 64),
			strconv.FormatFloat(inc.Longitude, 'f', -1, 64),
			inc.Source,
			inc.Description,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("writing csv record %s: %w", inc.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}
	return sb.String(), nil
}

// ExportJSON serializes the record set as indented JSON, the same structural
// form the API serves.
func ExportJSON(incidents []types.Incident) (string, error) {
	data, err := json.MarshalIndent(incidents, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling incidents: %w", err)
	}
	return string(data), nil
}
