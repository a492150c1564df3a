package types

// Filters is the optional predicate set applied to the record stream. A nil or
// absent field means the predicate is not applied, never "match nothing".
// Multi-value fields match any of their values; all active predicates are
// combined with AND.
type Filters struct {
	From               string   `json:"from,omitempty" form:"from"`
	To                 string   `json:"to,omitempty" form:"to"`
	State              []string `json:"state,omitempty" form:"state"`
	DistrictID         []string `json:"district_id,omitempty" form:"district_id"`
	SchoolType         []string `json:"school_type,omitempty" form:"school_type"`
	MinKilled          *int     `json:"min_killed,omitempty" form:"min_killed"`
	MaxKilled          *int     `json:"max_killed,omitempty" form:"max_killed"`
	MinInjured         *int     `json:"min_injured,omitempty" form:"min_injured"`
	MaxInjured         *int     `json:"max_injured,omitempty" form:"max_injured"`
	ShootingType       []string `json:"shooting_type,omitempty" form:"shooting_type"`
	HasResourceOfficer *bool    `json:"has_resource_officer,omitempty" form:"has_resource_officer"`
}

// IsZero reports whether no predicate is active.
func (f Filters) IsZero() bool {
	return f.From == "" && f.To == "" &&
		len(f.State) == 0 && len(f.DistrictID) == 0 && len(f.SchoolType) == 0 &&
		f.MinKilled == nil && f.MaxKilled == nil &&
		f.MinInjured == nil && f.MaxInjured == nil &&
		len(f.ShootingType) == 0 && f.HasResourceOfficer == nil
}
