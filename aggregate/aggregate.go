// Package aggregate derives the chart and map views from a canonical record
// set. Every operation is a pure fold: no shared state, empty input yields an
// empty result. The same shapes can arrive precomputed from the data source;
// these are the local recompute path.
package aggregate

import (
	"fmt"
	"math"
	"sort"

	"go-eduwatch/types"
)

// SeriesByMonth buckets incidents by calendar month and returns the buckets
// sorted ascending by period key. The zero-padded "YYYY-MM" key makes the
// lexicographic sort chronological. Records without a valid date are skipped.
func SeriesByMonth(incidents []types.Incident) []types.TimePoint {
	buckets := make(map[string]*types.TimePoint)
	for i := range incidents {
		inc := &incidents[i]
		key := inc.PeriodKey()
		if key == "" {
			continue
		}
		b, ok := buckets[key]
		if !ok {
			b = &types.TimePoint{Period: key}
			buckets[key] = b
		}
		b.Incidents++
		b.Affected += inc.AffectedCount
		if inc.Raw != nil {
			b.Killed += inc.Raw.Killed
			b.Injured += inc.Raw.Injured
		}
		switch inc.Severity {
		case types.Critical:
			b.Critical++
		case types.High:
			b.High++
		case types.Medium:
			b.Medium++
		case types.Low:
			b.Low++
		}
	}

	series := make([]types.TimePoint, 0, len(buckets))
	for _, b := range buckets {
		series = append(series, *b)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Period < series[j].Period })
	return series
}

// ByState buckets incidents by state code, sorted descending by incident
// count. A positive topN truncates after sorting; topN <= 0 returns all
// states. Ties keep the order stable by state code so repeated calls agree.
func ByState(incidents []types.Incident, topN int) []types.StateAgg {
	buckets := make(map[string]*types.StateAgg)
	for i := range incidents {
		inc := &incidents[i]
		b, ok := buckets[inc.State]
		if !ok {
			b = &types.StateAgg{State: inc.State}
			buckets[inc.State] = b
		}
		b.Incidents++
		b.Affected += inc.AffectedCount
		if inc.Raw != nil {
			b.Killed += inc.Raw.Killed
			b.Injured += inc.Raw.Injured
		}
	}

	states := make([]types.StateAgg, 0, len(buckets))
	for _, b := range buckets {
		states = append(states, *b)
	}
	sort.Slice(states, func(i, j int) bool {
		if states[i].Incidents != states[j].Incidents {
			return states[i].Incidents > states[j].Incidents
		}
		return states[i].State < states[j].State
	})
	if topN > 0 && len(states) > topN {
		states = states[:topN]
	}
	return states
}

// ByInstitutionType buckets by the human-readable institution-type label in
// first-seen order.
func ByInstitutionType(incidents []types.Incident) []types.CategoryAgg {
	return byCategory(incidents, func(inc *types.Incident) string {
		return inc.InstitutionType.Label()
	})
}

// BySeverity buckets by severity label in first-seen order.
func BySeverity(incidents []types.Incident) []types.CategoryAgg {
	return byCategory(incidents, func(inc *types.Incident) string {
		return inc.Severity.Label()
	})
}

func byCategory(incidents []types.Incident, keyOf func(*types.Incident) string) []types.CategoryAgg {
	index := make(map[string]int)
	var cats []types.CategoryAgg
	for i := range incidents {
		inc := &incidents[i]
		label := keyOf(inc)
		pos, ok := index[label]
		if !ok {
			pos = len(cats)
			index[label] = pos
			cats = append(cats, types.CategoryAgg{Label: label})
		}
		cats[pos].Incidents++
		cats[pos].Affected += inc.AffectedCount
	}
	return cats
}

// heat grid resolution, in degrees. A tenth of a degree is roughly 11 km,
// close to the geohash-6 cells the precomputed grid uses.
const gridStep = 0.1

// HeatGrid buckets mappable incidents into coordinate cells for the density
// layer. Records without usable coordinates are left out here but nowhere
// else.
func HeatGrid(incidents []types.Incident) []types.GridCell {
	buckets := make(map[string]*types.GridCell)
	var keys []string
	for i := range incidents {
		inc := &incidents[i]
		if !inc.HasCoordinates() {
			continue
		}
		lat := math.Floor(inc.Latitude/gridStep)*gridStep + gridStep/2
		lng := math.Floor(inc.Longitude/gridStep)*gridStep + gridStep/2
		key := fmt.Sprintf("%.2f,%.2f", lat, lng)
		b, ok := buckets[key]
		if !ok {
			b = &types.GridCell{Cell: key, Lat: lat, Lng: lng}
			buckets[key] = b
			keys = append(keys, key)
		}
		b.Incidents++
	}

	cells := make([]types.GridCell, 0, len(keys))
	for _, key := range keys {
		cells = append(cells, *buckets[key])
	}
	return cells
}

// Lookups collects the distinct values behind the filter sidebar from a raw
// snapshot. Value lists come back sorted; districts are unique by NCES id.
func Lookups(records []types.SchoolIncident) types.LookupData {
	states := make(map[string]bool)
	schoolTypes := make(map[string]bool)
	shootingTypes := make(map[string]bool)
	districts := make(map[string]types.District)

	for i := range records {
		rec := &records[i]
		if rec.State != "" {
			states[rec.State] = true
		}
		if rec.SchoolType != "" {
			schoolTypes[rec.SchoolType] = true
		}
		if rec.ShootingType != "" {
			shootingTypes[rec.ShootingType] = true
		}
		if rec.NCESDistrict != "" {
			if _, ok := districts[rec.NCESDistrict]; !ok {
				districts[rec.NCESDistrict] = types.District{
					ID:     rec.NCESDistrict,
					Name:   rec.DistrictName,
					State:  rec.State,
					County: rec.County,
				}
			}
		}
	}

	lookups := types.LookupData{
		States:        sortedKeys(states),
		SchoolTypes:   sortedKeys(schoolTypes),
		ShootingTypes: sortedKeys(shootingTypes),
		Districts:     make([]types.District, 0, len(districts)),
	}
	districtIDs := make([]string, 0, len(districts))
	for id := range districts {
		districtIDs = append(districtIDs, id)
	}
	sort.Strings(districtIDs)
	for _, id := range districtIDs {
		lookups.Districts = append(lookups.Districts, districts[id])
	}
	return lookups
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
