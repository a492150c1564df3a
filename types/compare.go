package types

// ComparisonRow is the per-group metrics row behind the side-by-side and radar
// views. GroupKey is a state code or a "YYYY-MM" period. Rates are percentages
// of the group's incident count and are defined as 0 for an empty group.
type ComparisonRow struct {
	GroupKey string `json:"groupKey"`

	Incidents int `json:"totalIncidents"`
	Affected  int `json:"totalAffected"`
	Killed    int `json:"totalKilled"`
	Injured   int `json:"totalInjured"`

	WithResourceOfficer int     `json:"withResourceOfficer"`
	ResourceOfficerRate float64 `json:"resourceOfficerRate"`
	AverageAffected     float64 `json:"averageAffected"`

	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`

	CriticalRate float64 `json:"criticalRate"`
	HighRate     float64 `json:"highRate"`
	MediumRate   float64 `json:"mediumRate"`
	LowRate      float64 `json:"lowRate"`

	Elementary int `json:"elementary"`
	Middle     int `json:"middle"`
	HighSchool int `json:"highSchool"`
	University int `json:"university"`
}

// RadarMetric is one spoke of the radar chart: a metric name and its 0-100
// value per compared group.
type RadarMetric struct {
	Metric string             `json:"metric"`
	Values map[string]float64 `json:"values"`
}
