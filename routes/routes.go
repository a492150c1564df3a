package routes

import (
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"

	"go-eduwatch/handlers"
	"go-eduwatch/snapshot"
)

// corsMiddleware allows the dashboard frontend at clientURL to call the API
// from the browser. An empty clientURL disables the headers entirely.
func corsMiddleware(clientURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", clientURL)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// SetupRouter wires the dashboard API. The Firestore and OpenAI clients may be
// nil; the handlers that need them answer 503 instead.
func SetupRouter(provider *snapshot.Provider, firestoreClient *firestore.Client, openaiClient *openai.Client, csvPath, clientURL string) *gin.Engine {
	r := gin.Default()

	if clientURL != "" {
		r.Use(corsMiddleware(clientURL))
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to EduWatch!",
			"source":  provider.SourceName(),
		})
	})

	// api routes
	api := r.Group("/api")
	{
		api.GET("/incidents", func(c *gin.Context) {
			handlers.GetIncidents(c, provider)
		})
		api.GET("/incidents/:uid", func(c *gin.Context) {
			handlers.GetIncident(c, provider, firestoreClient)
		})

		api.GET("/stats/series", func(c *gin.Context) {
			handlers.GetSeries(c, provider)
		})
		api.GET("/stats/by-state", func(c *gin.Context) {
			handlers.GetAggByState(c, provider)
		})
		api.GET("/stats/heat", func(c *gin.Context) {
			handlers.GetHeatGrid(c, provider)
		})
		api.GET("/stats/by-category", func(c *gin.Context) {
			handlers.GetAggByCategory(c, provider)
		})
		api.GET("/lookups", func(c *gin.Context) {
			handlers.GetLookups(c, provider)
		})

		api.GET("/compare", func(c *gin.Context) {
			handlers.GetComparison(c, provider)
		})
		api.GET("/table", func(c *gin.Context) {
			handlers.GetTable(c, provider)
		})
		api.GET("/export/:format", func(c *gin.Context) {
			handlers.ExportIncidents(c, provider)
		})

		api.POST("/reports", func(c *gin.Context) {
			handlers.SubmitReport(c, firestoreClient)
		})
		api.GET("/reports", func(c *gin.Context) {
			handlers.ListReports(c, firestoreClient)
		})
		api.GET("/reports/:id", func(c *gin.Context) {
			handlers.GetReport(c, firestoreClient)
		})
		api.POST("/summary", func(c *gin.Context) {
			handlers.GetSummary(c, provider, openaiClient)
		})

		api.POST("/admin/import", func(c *gin.Context) {
			handlers.ImportIncidents(c, firestoreClient, csvPath)
		})
	}

	return r
}
