package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"go-eduwatch/processor"
	"go-eduwatch/types"
)

const incidentsCollection = "incidents"

// FirestoreSource serves incident snapshots from the 'incidents' collection.
// Only the date range translates into a Firestore query; the remaining
// predicates go through the one shared filter implementation so the server
// and local paths cannot drift apart. The server-side range compares the
// stored date strings lexicographically, which is only chronological because
// SaveIncidents rewrites every date to the ISO layout on the way in.
type FirestoreSource struct {
	Client *firestore.Client
}

func NewFirestoreSource(client *firestore.Client) *FirestoreSource {
	return &FirestoreSource{Client: client}
}

func (s *FirestoreSource) Name() string {
	return "firestore"
}

func (s *FirestoreSource) FetchIncidents(ctx context.Context, f types.Filters) ([]types.SchoolIncident, error) {
	query := s.Client.Collection(incidentsCollection).Query
	if f.From != "" {
		query = query.Where("date", ">=", f.From)
	}
	if f.To != "" {
		query = query.Where("date", "<=", f.To)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var records []types.SchoolIncident
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating incidents collection: %w", err)
		}

		var rec types.SchoolIncident
		if err := doc.DataTo(&rec); err != nil {
			log.Printf("Warning: Error converting document %s to SchoolIncident: %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		if rec.UID == "" {
			rec.UID = doc.Ref.ID
		}
		records = append(records, rec)
	}

	// Date bounds were already applied server-side; running the full spec
	// again over the result is harmless and covers the rest.
	records = processor.ApplyFilters(records, f)

	log.Printf("Retrieved %d incidents from Firestore", len(records))
	return records, nil
}

// GetIncidentByUID retrieves a single incident document.
func GetIncidentByUID(ctx context.Context, client *firestore.Client, uid string) (types.SchoolIncident, error) {
	var rec types.SchoolIncident

	docSnap, err := client.Collection(incidentsCollection).Doc(uid).Get(ctx)
	if err != nil {
		return rec, fmt.Errorf("error getting incident %s: %w", uid, err)
	}

	if err := docSnap.DataTo(&rec); err != nil {
		return rec, fmt.Errorf("error converting document %s to SchoolIncident: %w", uid, err)
	}
	if rec.UID == "" {
		rec.UID = docSnap.Ref.ID
	}
	return rec, nil
}

// normalizeDates rewrites each record's date to the ISO layout. The CSV
// accepts several layouts, but the collection must hold a single sortable one
// for the lexicographic date-range query to stay chronological. Unparseable
// dates are stored as-is; they cannot satisfy a date predicate on any path.
func normalizeDates(records []types.SchoolIncident) {
	for i := range records {
		if t, ok := processor.ParseIncidentDate(records[i].Date); ok {
			records[i].Date = t.Format("2006-01-02")
		}
	}
}

// SaveIncidents bulk-writes a batch of incident records, keyed by UID. Used
// to seed the collection from a CSV import. Dates are normalized to the ISO
// layout before writing.
func SaveIncidents(client *firestore.Client, records []types.SchoolIncident) error {
	if len(records) == 0 {
		log.Println("No incidents to save.")
		return nil
	}
	normalizeDates(records)

	ctx := context.Background()
	bw := client.BulkWriter(ctx)
	collRef := client.Collection(incidentsCollection)

	savedCount := 0
	for i := range records {
		rec := records[i]
		if rec.UID == "" {
			log.Printf("Warning: Skipping incident with empty UID: %s (%s)", rec.SchoolName, rec.Date)
			continue
		}
		docRef := collRef.Doc(rec.UID)
		if _, err := bw.Set(docRef, rec); err != nil {
			log.Printf("Error enqueueing incident %s for save: %v", rec.UID, err)
		} else {
			savedCount++
		}
	}

	if savedCount == 0 {
		log.Println("No valid incidents were enqueued for saving.")
		return nil
	}

	// Flush sends any remaining writes and waits for them to complete.
	bw.Flush()
	log.Printf("BulkWriter flushed. Attempted to save %d incidents.", savedCount)
	return nil
}
