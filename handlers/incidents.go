package handlers

import (
	"log"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"go-eduwatch/db"
	"go-eduwatch/snapshot"
)

// GetIncidents serves the raw record snapshot for the current filter spec.
func GetIncidents(c *gin.Context, provider *snapshot.Provider) {
	filters := parseFilters(c)

	records, err := provider.Incidents(c.Request.Context(), filters)
	if err != nil {
		log.Printf("Error fetching incidents: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to fetch incident data",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetIncident serves one record plus its perpetrator sub-records for the
// detail panel. Looks in the cached snapshot first; a record filtered out of
// the current snapshot is still reachable by direct Firestore lookup.
func GetIncident(c *gin.Context, provider *snapshot.Provider, firestoreClient *firestore.Client) {
	uid := c.Param("uid")

	records, err := provider.Incidents(c.Request.Context(), parseFilters(c))
	if err != nil {
		log.Printf("Error fetching incidents for detail view: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to fetch incident data",
			"details": err.Error(),
		})
		return
	}

	for i := range records {
		if records[i].UID == uid {
			c.JSON(http.StatusOK, gin.H{
				"incident": records[i],
				"shooters": records[i].Shooters(),
			})
			return
		}
	}

	if firestoreClient != nil {
		rec, err := db.GetIncidentByUID(c.Request.Context(), firestoreClient, uid)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{
				"incident": rec,
				"shooters": rec.Shooters(),
			})
			return
		}
		log.Printf("Incident %s not in snapshot and direct lookup failed: %v", uid, err)
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Incident not found", "uid": uid})
}
