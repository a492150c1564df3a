package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-eduwatch/types"
)

const reportsCollection = "reports"

// SaveReport stores a submitted incident report under its generated ID.
func SaveReport(client *firestore.Client, report types.IncidentReport) error {
	if report.ID == "" {
		return fmt.Errorf("report is missing an ID")
	}

	ctx := context.Background()
	_, err := client.Collection(reportsCollection).Doc(report.ID).Set(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to save report %s: %w", report.ID, err)
	}

	log.Printf("Saved incident report %s (%s, %s)", report.ID, report.InstitutionName, report.State)
	return nil
}

// GetReportByID fetches a single submitted report.
func GetReportByID(client *firestore.Client, reportID string) (types.IncidentReport, error) {
	var report types.IncidentReport

	ctx := context.Background()
	docSnap, err := client.Collection(reportsCollection).Doc(reportID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return report, fmt.Errorf("report %s not found", reportID)
		}
		return report, fmt.Errorf("error getting report %s: %w", reportID, err)
	}

	if err := docSnap.DataTo(&report); err != nil {
		return report, fmt.Errorf("error converting document %s to IncidentReport: %w", reportID, err)
	}
	report.ID = docSnap.Ref.ID
	return report, nil
}

// ListReports retrieves all submitted reports, newest first.
func ListReports(client *firestore.Client) ([]types.IncidentReport, error) {
	ctx := context.Background()
	var reports []types.IncidentReport

	iter := client.Collection(reportsCollection).
		OrderBy("submittedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating reports collection: %w", err)
		}

		var report types.IncidentReport
		if err := doc.DataTo(&report); err != nil {
			log.Printf("Warning: Error converting document %s to IncidentReport: %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		report.ID = doc.Ref.ID
		reports = append(reports, report)
	}
	return reports, nil
}
