package processor

import (
	"fmt"
	"log"
	"time"

	"go-eduwatch/classify"
	"go-eduwatch/types"
)

// date layouts seen in the incident database exports, most common first.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"1/2/2006",
	"01/02/2006",
}

// ParseIncidentDate parses a raw occurrence date. The bool is false when no
// layout matches; callers keep such records but drop them from date-dependent
// views.
func ParseIncidentDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Normalize converts one raw record into its canonical display form. Pure and
// one-to-one: the affected count is the casualties field verbatim, never
// recomputed from killed+injured.
func Normalize(raw types.SchoolIncident) types.Incident {
	occurredAt, hasDate := ParseIncidentDate(raw.Date)

	return types.Incident{
		ID:              raw.UID,
		Date:            raw.Date,
		InstitutionName: raw.SchoolName,
		City:            raw.City,
		State:           raw.State,
		AffectedCount:   raw.Casualties,
		Latitude:        raw.Lat,
		Longitude:       raw.Long,
		Source:          types.SourceLabel,
		InstitutionType: classify.InstitutionTypeFor(raw.SchoolType, raw.LowGrade, raw.HighGrade),
		Severity:        classify.SeverityFor(raw.Casualties, raw.Killed, raw.Injured),
		Description:     fmt.Sprintf("%s - %d killed, %d injured", raw.ShootingType, raw.Killed, raw.Injured),
		OccurredAt:      occurredAt,
		HasDate:         hasDate,
		Raw:             &raw,
	}
}

// NormalizeAll maps a raw snapshot to a fresh canonical set, preserving order.
// Records with unparseable dates are kept (flagged via HasDate) and logged as
// a data-quality warning.
func NormalizeAll(raws []types.SchoolIncident) []types.Incident {
	incidents := make([]types.Incident, 0, len(raws))
	badDates := 0
	for _, raw := range raws {
		inc := Normalize(raw)
		if !inc.HasDate {
			badDates++
		}
		incidents = append(incidents, inc)
	}
	if badDates > 0 {
		log.Printf("Warning: %d of %d records have unparseable dates; excluded from date-based views", badDates, len(raws))
	}
	return incidents
}
