package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-eduwatch/aggregate"
	"go-eduwatch/snapshot"
)

// GetSeries serves the monthly time series for the current filter spec.
func GetSeries(c *gin.Context, provider *snapshot.Provider) {
	series, err := provider.Series(c.Request.Context(), parseFilters(c))
	if err != nil {
		log.Printf("Error computing time series: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to compute time series",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, series)
}

// GetAggByState serves the jurisdiction aggregate, optionally truncated to
// the top N states by incident count (?limit=10 is what the charts use).
func GetAggByState(c *gin.Context, provider *snapshot.Provider) {
	states, err := provider.ByState(c.Request.Context(), parseFilters(c))
	if err != nil {
		log.Printf("Error computing state aggregate: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to compute state aggregations",
			"details": err.Error(),
		})
		return
	}

	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < len(states) {
			states = states[:n]
		}
	}
	c.JSON(http.StatusOK, states)
}

// GetHeatGrid serves the map density cells.
func GetHeatGrid(c *gin.Context, provider *snapshot.Provider) {
	cells, err := provider.Heat(c.Request.Context(), parseFilters(c))
	if err != nil {
		log.Printf("Error computing heat grid: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to compute heat grid",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, cells)
}

// GetAggByCategory serves the category breakdown the distribution charts use.
// ?dim=institutionType|severity picks the dimension.
func GetAggByCategory(c *gin.Context, provider *snapshot.Provider) {
	dim := c.DefaultQuery("dim", "severity")
	if dim != "institutionType" && dim != "severity" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dim must be 'institutionType' or 'severity'"})
		return
	}

	incidents, err := provider.Canonical(c.Request.Context(), parseFilters(c))
	if err != nil {
		log.Printf("Error computing category aggregate: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to compute category aggregations",
			"details": err.Error(),
		})
		return
	}

	if dim == "institutionType" {
		c.JSON(http.StatusOK, aggregate.ByInstitutionType(incidents))
		return
	}
	c.JSON(http.StatusOK, aggregate.BySeverity(incidents))
}

// GetLookups serves the distinct filter values for the sidebar.
func GetLookups(c *gin.Context, provider *snapshot.Provider) {
	lookups, err := provider.Lookups(c.Request.Context())
	if err != nil {
		log.Printf("Error computing lookups: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to compute lookups",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, lookups)
}
