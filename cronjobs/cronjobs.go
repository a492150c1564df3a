package cronjobs

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"go-eduwatch/snapshot"
)

// InitCronJobs schedules the periodic snapshot refresh so caches never serve
// a stale dataset for long and the first request after expiry stays fast.
func InitCronJobs(provider *snapshot.Provider) {
	log.Println("\nStarting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	// Snapshot refresh: every 10 minutes
	_, err := c.AddFunc("*/10 * * * *", func() {
		log.Println("\nCronJob: Snapshot Refresh Running")
		if err := provider.Refresh(context.Background()); err != nil {
			log.Printf("Snapshot refresh failed: %v", err)
		}
	})
	if err != nil {
		log.Println("Error scheduling Snapshot Refresh:", err)
	}

	// Lookup warm: every 30 minutes at the 5 minute mark, so the filter
	// sidebar values are ready after the lookup cache expires
	_, err = c.AddFunc("5-59/30 * * * *", func() {
		log.Println("\nCronJob: Lookup Warm Running")
		lookups, err := provider.Lookups(context.Background())
		if err != nil {
			log.Printf("Lookup warm failed: %v", err)
			return
		}
		log.Printf("Lookups warmed: %d states, %d school types, %d districts",
			len(lookups.States), len(lookups.SchoolTypes), len(lookups.Districts))
	})
	if err != nil {
		log.Println("Error scheduling Lookup Warm:", err)
	}

	c.Start()
}
