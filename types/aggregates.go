package types

// TimePoint is one month bucket of the time series. Killed/Injured come from
// the raw schema; the per-severity counts feed stacked charts.
type TimePoint struct {
	Period    string `json:"period"`
	Incidents int    `json:"incidents"`
	Affected  int    `json:"affected"`
	Killed    int    `json:"killed"`
	Injured   int    `json:"injured"`
	Critical  int    `json:"critical"`
	High      int    `json:"high"`
	Medium    int    `json:"medium"`
	Low       int    `json:"low"`
}

// StateAgg is one jurisdiction bucket, sorted descending by incident count.
type StateAgg struct {
	State     string `json:"state"`
	Incidents int    `json:"incidents"`
	Affected  int    `json:"affected"`
	Killed    int    `json:"killed"`
	Injured   int    `json:"injured"`
}

// CategoryAgg buckets by institution-type label or severity level.
type CategoryAgg struct {
	Label     string `json:"label"`
	Incidents int    `json:"incidents"`
	Affected  int    `json:"affected"`
}

// GridCell is one cell of the map heat grid. Cells are keyed by coordinates
// rounded to a tenth of a degree; Lat/Lng are the cell's center.
type GridCell struct {
	Cell      string  `json:"cell"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Incidents int     `json:"incidents"`
}

type District struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	State  string `json:"state"`
	County string `json:"county"`
}

// LookupData backs the filter sidebar: the distinct values of every
// multi-select predicate.
type LookupData struct {
	States        []string   `json:"states"`
	SchoolTypes   []string   `json:"school_types"`
	ShootingTypes []string   `json:"shooting_types"`
	Districts     []District `json:"districts"`
}
