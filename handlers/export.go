package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-eduwatch/snapshot"
	"go-eduwatch/tableview"
)

// exportSet builds the full filtered and sorted (never paginated) record set
// both export formats serialize.
func exportSet(c *gin.Context, provider *snapshot.Provider) ([]byte, bool) {
	search := c.Query("search")
	sortField := c.DefaultQuery("sort", tableview.SortByDate)
	dir := tableview.SortDirection(c.DefaultQuery("dir", string(tableview.Descending)))

	incidents, err := provider.Canonical(c.Request.Context(), parseFilters(c))
	if err != nil {
		log.Printf("Error fetching incidents for export: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to fetch incident data",
			"details": err.Error(),
		})
		return nil, false
	}

	sorted := tableview.Sort(tableview.Search(incidents, search), sortField, dir)

	format := c.Param("format")
	switch format {
	case "csv":
		content, err := tableview.ExportCSV(sorted)
		if err != nil {
			log.Printf("Error serializing CSV export: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serialize export"})
			return nil, false
		}
		return []byte(content), true
	case "json":
		content, err := tableview.ExportJSON(sorted)
		if err != nil {
			log.Printf("Error serializing JSON export: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serialize export"})
			return nil, false
		}
		return []byte(content), true
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown export format %q", format)})
	return nil, false
}

// ExportIncidents streams the table export as a download, named the way the
// dashboard names its files.
func ExportIncidents(c *gin.Context, provider *snapshot.Provider) {
	content, ok := exportSet(c, provider)
	if !ok {
		return
	}

	format := c.Param("format")
	filename := fmt.Sprintf("incidentes_educativos_%s.%s", time.Now().UTC().Format("2006-01-02"), format)
	contentType := "application/json; charset=utf-8"
	if format == "csv" {
		contentType = "text/csv; charset=utf-8"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, content)
}
