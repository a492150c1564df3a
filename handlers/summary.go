package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"

	"go-eduwatch/snapshot"
	"go-eduwatch/summarization"
	"go-eduwatch/types"
)

// GetSummary generates a short AI narrative over the currently filtered
// incident set. Filters come from the JSON body; query params work too for
// quick testing.
func GetSummary(c *gin.Context, provider *snapshot.Provider, openaiClient *openai.Client) {
	if openaiClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Summaries not configured"})
		return
	}

	filters := parseFilters(c)
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		var body types.Filters
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter payload", "details": err.Error()})
			return
		}
		filters = body
	}

	incidents, err := provider.Canonical(c.Request.Context(), filters)
	if err != nil {
		log.Printf("Error fetching incidents for summary: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to fetch incident data",
			"details": err.Error(),
		})
		return
	}
	if len(incidents) == 0 {
		c.JSON(http.StatusOK, gin.H{"summary": "", "count": 0})
		return
	}

	summary, err := summarization.GenerateIncidentSummary(c.Request.Context(), incidents, openaiClient)
	if err != nil {
		log.Printf("Error generating summary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate summary",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary, "count": len(incidents)})
}
