package handlers

import (
	"log"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-eduwatch/db"
	"go-eduwatch/geocode"
	"go-eduwatch/types"
)

// SubmitReport accepts an incident report draft from the report form,
// geocodes it best-effort and stores it. The draft is otherwise opaque: no
// business validation beyond the form's required fields happens here.
func SubmitReport(c *gin.Context, firestoreClient *firestore.Client) {
	var report types.IncidentReport
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report payload", "details": err.Error()})
		return
	}

	missing := []string{}
	for field, value := range map[string]string{
		"title":           report.Title,
		"date":            report.Date,
		"category":        report.Category,
		"severity":        report.Severity,
		"institutionName": report.InstitutionName,
		"state":           report.State,
		"city":            report.City,
	} {
		if value == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "fields": missing})
		return
	}

	report.ID = uuid.NewString()
	report.SubmittedAt = time.Now().UTC().Format(time.RFC3339)

	// Geocoding is best-effort: a report without coordinates still gets
	// stored, it just cannot be placed on the map.
	lat, lng, formatted, err := geocode.GeocodeInstitution(c.Request.Context(), report.InstitutionName, report.City, report.State)
	if err != nil {
		log.Printf("Could not geocode report %s (%s): %v", report.ID, report.InstitutionName, err)
	} else {
		report.Latitude = lat
		report.Longitude = lng
		log.Printf("Geocoded report %s to %q (%f, %f)", report.ID, formatted, lat, lng)
	}

	if firestoreClient == nil {
		log.Printf("No Firestore client configured; report %s accepted but not persisted", report.ID)
		c.JSON(http.StatusAccepted, gin.H{"id": report.ID, "persisted": false})
		return
	}

	if err := db.SaveReport(firestoreClient, report); err != nil {
		log.Printf("Error saving report %s: %v", report.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to save report",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": report.ID, "persisted": true})
}

// ListReports serves all submitted reports, newest first.
func ListReports(c *gin.Context, firestoreClient *firestore.Client) {
	if firestoreClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Report storage not configured"})
		return
	}

	reports, err := db.ListReports(firestoreClient)
	if err != nil {
		log.Printf("Error listing reports: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list reports",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports, "count": len(reports)})
}

// GetReport serves one submitted report.
func GetReport(c *gin.Context, firestoreClient *firestore.Client) {
	if firestoreClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Report storage not configured"})
		return
	}

	reportID := c.Param("id")
	report, err := db.GetReportByID(firestoreClient, reportID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found", "id": reportID})
		return
	}
	c.JSON(http.StatusOK, report)
}

// ImportIncidents seeds the Firestore incidents collection from the local
// CSV export. Admin utility for standing up a fresh environment.
func ImportIncidents(c *gin.Context, firestoreClient *firestore.Client, csvPath string) {
	if firestoreClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Firestore not configured"})
		return
	}

	src := db.NewFileSource(csvPath)
	records, err := src.FetchIncidents(c.Request.Context(), types.Filters{})
	if err != nil {
		log.Printf("Error reading %s for import: %v", csvPath, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to read incident file",
			"details": err.Error(),
		})
		return
	}

	if err := db.SaveIncidents(firestoreClient, records); err != nil {
		log.Printf("Error importing incidents: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to import incidents",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Import complete", "count": len(records)})
}
