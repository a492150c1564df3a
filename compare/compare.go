// Package compare computes the side-by-side metrics rows behind the state and
// period comparison views. The dashboard caps a comparison at four groups;
// that is a UI constraint, the math here handles any number of keys.
package compare

import (
	"math"
	"sort"

	"go-eduwatch/types"
)

type GroupBy string

const (
	ByState  GroupBy = "states"
	ByPeriod GroupBy = "periods"
)

// MaxGroups is the selection cap the dashboard enforces. Callers truncate;
// the engine itself does not.
const MaxGroups = 4

// Groups computes one ComparisonRow per requested key, in key order. Keys
// matching no record produce an all-zero row; every rate is defined as 0 for
// an empty group rather than NaN.
func Groups(incidents []types.Incident, keys []string, by GroupBy) []types.ComparisonRow {
	rows := make([]types.ComparisonRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, groupRow(incidents, key, by))
	}
	return rows
}

// GroupKeys lists the distinct selectable keys for a comparison mode, sorted
// ascending. Period keys skip records without a valid date.
func GroupKeys(incidents []types.Incident, by GroupBy) []string {
	seen := make(map[string]bool)
	for i := range incidents {
		key := keyOf(&incidents[i], by)
		if key != "" {
			seen[key] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func keyOf(inc *types.Incident, by GroupBy) string {
	if by == ByPeriod {
		return inc.PeriodKey()
	}
	return inc.State
}

func groupRow(incidents []types.Incident, key string, by GroupBy) types.ComparisonRow {
	row := types.ComparisonRow{GroupKey: key}

	for i := range incidents {
		inc := &incidents[i]
		if keyOf(inc, by) != key {
			continue
		}
		row.Incidents++
		row.Affected += inc.AffectedCount
		if inc.Raw != nil {
			row.Killed += inc.Raw.Killed
			row.Injured += inc.Raw.Injured
			if inc.Raw.ResourceOfficer {
				row.WithResourceOfficer++
			}
		}
		switch inc.Severity {
		case types.Critical:
			row.Critical++
		case types.High:
			row.High++
		case types.Medium:
			row.Medium++
		case types.Low:
			row.Low++
		}
		switch inc.InstitutionType {
		case types.Elementary:
			row.Elementary++
		case types.Middle:
			row.Middle++
		case types.HighSchool:
			row.HighSchool++
		case types.University:
			row.University++
		}
	}

	if row.Incidents > 0 {
		n := float64(row.Incidents)
		row.ResourceOfficerRate = float64(row.WithResourceOfficer) / n * 100
		row.AverageAffected = math.Round(float64(row.Affected) / n)
		row.CriticalRate = float64(row.Critical) / n * 100
		row.HighRate = float64(row.High) / n * 100
		row.MediumRate = float64(row.Medium) / n * 100
		row.LowRate = float64(row.Low) / n * 100
	}
	return row
}

// Radar derives the multi-metric radar view from comparison rows. Totals are
// scaled to 0-100 against the largest value across the compared groups (a
// zero maximum maps to 0); the percentage metrics are already on that scale
// and pass through unchanged.
func Radar(rows []types.ComparisonRow) []types.RadarMetric {
	if len(rows) == 0 {
		return nil
	}

	var maxIncidents, maxAffected float64
	for i := range rows {
		maxIncidents = math.Max(maxIncidents, float64(rows[i].Incidents))
		maxAffected = math.Max(maxAffected, float64(rows[i].Affected))
	}

	metrics := []types.RadarMetric{
		{Metric: "Total Incidentes", Values: make(map[string]float64, len(rows))},
		{Metric: "Total Afectados", Values: make(map[string]float64, len(rows))},
		{Metric: "% Críticos", Values: make(map[string]float64, len(rows))},
		{Metric: "% Altos", Values: make(map[string]float64, len(rows))},
	}
	for i := range rows {
		row := &rows[i]
		metrics[0].Values[row.GroupKey] = scaleToMax(float64(row.Incidents), maxIncidents)
		metrics[1].Values[row.GroupKey] = scaleToMax(float64(row.Affected), maxAffected)
		metrics[2].Values[row.GroupKey] = row.CriticalRate
		metrics[3].Values[row.GroupKey] = row.HighRate
	}
	return metrics
}

func scaleToMax(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return v / max * 100
}
