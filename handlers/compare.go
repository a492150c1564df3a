package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-eduwatch/compare"
	"go-eduwatch/snapshot"
)

// GetComparison serves the side-by-side group metrics and the radar view.
// ?by=states|periods picks the grouping, ?keys=TX,CA the groups. The
// dashboard allows at most four groups; extra keys are dropped here, not in
// the engine.
func GetComparison(c *gin.Context, provider *snapshot.Provider) {
	by := compare.GroupBy(c.DefaultQuery("by", string(compare.ByState)))
	if by != compare.ByState && by != compare.ByPeriod {
		c.JSON(http.StatusBadRequest, gin.H{"error": "by must be 'states' or 'periods'"})
		return
	}

	keys := splitParam(c.Query("keys"))
	if len(keys) > compare.MaxGroups {
		log.Printf("Comparison request with %d keys, truncating to %d", len(keys), compare.MaxGroups)
		keys = keys[:compare.MaxGroups]
	}

	incidents, err := provider.Canonical(c.Request.Context(), parseFilters(c))
	if err != nil {
		log.Printf("Error fetching incidents for comparison: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to fetch incident data",
			"details": err.Error(),
		})
		return
	}

	if len(keys) == 0 {
		// No selection yet: return the selectable keys so the UI can render
		// its pickers.
		c.JSON(http.StatusOK, gin.H{
			"availableKeys": compare.GroupKeys(incidents, by),
		})
		return
	}

	rows := compare.Groups(incidents, keys, by)
	c.JSON(http.StatusOK, gin.H{
		"groups": rows,
		"radar":  compare.Radar(rows),
	})
}
