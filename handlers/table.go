package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-eduwatch/snapshot"
	"go-eduwatch/tableview"
)

// GetTable serves one page of the incident table. Defaults mirror the
// dashboard: sorted by date descending, 25 rows per page.
func GetTable(c *gin.Context, provider *snapshot.Provider) {
	search := c.Query("search")
	sortField := c.DefaultQuery("sort", tableview.SortByDate)
	dir := tableview.SortDirection(c.DefaultQuery("dir", string(tableview.Descending)))

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer"})
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("size", "25"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be an integer"})
		return
	}

	incidents, err := provider.Canonical(c.Request.Context(), parseFilters(c))
	if err != nil {
		log.Printf("Error fetching incidents for table: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to fetch incident data",
			"details": err.Error(),
		})
		return
	}

	result, err := tableview.Query(incidents, search, sortField, dir, page, pageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
