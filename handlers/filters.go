package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"go-eduwatch/types"
)

// parseFilters reads the filter spec from query parameters. Multi-value
// predicates arrive comma-joined (state=TX,CA), matching what the dashboard
// sends. Absent parameters leave their predicate inactive.
func parseFilters(c *gin.Context) types.Filters {
	f := types.Filters{
		From:         c.Query("from"),
		To:           c.Query("to"),
		State:        splitParam(c.Query("state")),
		DistrictID:   splitParam(c.Query("district_id")),
		SchoolType:   splitParam(c.Query("school_type")),
		ShootingType: splitParam(c.Query("shooting_type")),
	}

	f.MinKilled = intParam(c.Query("min_killed"))
	f.MaxKilled = intParam(c.Query("max_killed"))
	f.MinInjured = intParam(c.Query("min_injured"))
	f.MaxInjured = intParam(c.Query("max_injured"))

	if v := c.Query("has_resource_officer"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.HasResourceOfficer = &b
		}
	}
	return f
}

func splitParam(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func intParam(v string) *int {
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
