package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"

	"cloud.google.com/go/firestore"
	"go-eduwatch/cronjobs"
	"go-eduwatch/db"
	"go-eduwatch/routes"
	"go-eduwatch/snapshot"
)

const defaultCSVPath = "./data/school_incidents.csv"

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	csvPath := os.Getenv("INCIDENT_DATA_FILE")
	if csvPath == "" {
		csvPath = defaultCSVPath
	}

	// Pick the data source: Firestore when credentials are configured,
	// otherwise the local CSV export.
	var src snapshot.Source
	var firestoreClient *firestore.Client
	if os.Getenv("FIREBASE_CREDENTIALS") != "" {
		var err error
		firestoreClient, err = db.InitFirestore()
		if err != nil {
			log.Fatalf("Failed to initialize Firestore: %v", err)
		}
		defer db.CloseFirestore() // Firestore client is closed on exit
		src = db.NewFirestoreSource(firestoreClient)
	} else {
		log.Printf("FIREBASE_CREDENTIALS not set, serving incidents from %s", csvPath)
		src = db.NewFileSource(csvPath)
	}

	// OpenAI client for the summary panel
	var openaiClient *openai.Client
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		fmt.Println("OPENAI_API_KEY loaded")
		openaiClient = openai.NewClient(apiKey)
	}

	provider := snapshot.NewProvider(src)

	// Initialize cron jobs
	cronjobs.InitCronJobs(provider)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter(provider, firestoreClient, openaiClient, csvPath, os.Getenv("CLIENT_URL"))
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
