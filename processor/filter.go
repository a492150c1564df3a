package processor

import (
	"time"

	"go-eduwatch/types"
)

// ApplyFilters returns the subset of records matching every active predicate
// in f, preserving the input order. An empty filter set returns the input
// unchanged; contradictory bounds simply yield an empty result.
//
// Set membership is case-sensitive exact match on the source's canonical
// casing (two-letter state codes and the like). Range bounds are inclusive.
func ApplyFilters(records []types.SchoolIncident, f types.Filters) []types.SchoolIncident {
	if f.IsZero() {
		return records
	}

	fromTime, hasFrom := ParseIncidentDate(f.From)
	toTime, hasTo := ParseIncidentDate(f.To)
	fromDay, toDay := dayOf(fromTime), dayOf(toTime)
	dateBounded := hasFrom || hasTo

	out := make([]types.SchoolIncident, 0, len(records))
	for _, rec := range records {
		if dateBounded {
			occurred, ok := ParseIncidentDate(rec.Date)
			if !ok {
				continue // unparseable date cannot satisfy a date predicate
			}
			day := dayOf(occurred)
			if hasFrom && day.Before(fromDay) {
				continue
			}
			if hasTo && day.After(toDay) {
				continue
			}
		}
		if len(f.State) > 0 && !containsString(f.State, rec.State) {
			continue
		}
		if len(f.DistrictID) > 0 && !containsString(f.DistrictID, rec.NCESDistrict) {
			continue
		}
		if len(f.SchoolType) > 0 && !containsString(f.SchoolType, rec.SchoolType) {
			continue
		}
		if f.MinKilled != nil && rec.Killed < *f.MinKilled {
			continue
		}
		if f.MaxKilled != nil && rec.Killed > *f.MaxKilled {
			continue
		}
		if f.MinInjured != nil && rec.Injured < *f.MinInjured {
			continue
		}
		if f.MaxInjured != nil && rec.Injured > *f.MaxInjured {
			continue
		}
		if len(f.ShootingType) > 0 && !containsString(f.ShootingType, rec.ShootingType) {
			continue
		}
		if f.HasResourceOfficer != nil && rec.ResourceOfficer != *f.HasResourceOfficer {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// dayOf strips the time component. Range bounds are calendar dates, so a
// record whose date carries a timestamp still compares by its calendar day.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
