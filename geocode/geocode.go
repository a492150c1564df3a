package geocode

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"googlemaps.github.io/maps"
)

// mapsClient is a singleton maps client instance.
var (
	mapsClient *maps.Client
	clientOnce sync.Once
)

// InitMapsClient initializes and returns a singleton Google Maps client.
func InitMapsClient() (*maps.Client, error) {
	var err error
	clientOnce.Do(func() {
		apiKey := os.Getenv("MAPS_CREDENTIALS")
		if apiKey == "" {
			err = fmt.Errorf("MAPS_CREDENTIALS environment variable not set")
			return
		}
		mapsClient, err = maps.NewClient(maps.WithAPIKey(apiKey))
		if err != nil {
			log.Fatalf("Failed to create maps client: %v", err)
		}
	})
	return mapsClient, err
}

// GeocodeInstitution forward-geocodes a reported institution so the report
// can be placed on the map. Returns the coordinates and formatted address of
// the best match.
func GeocodeInstitution(ctx context.Context, institutionName, city, state string) (lat, lng float64, formatted string, err error) {
	client, err := InitMapsClient()
	if err != nil {
		return 0, 0, "", err
	}

	var parts []string
	for _, p := range []string{institutionName, city, state} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	address := strings.Join(parts, ", ")
	if address == "" {
		return 0, 0, "", fmt.Errorf("nothing to geocode")
	}

	req := &maps.GeocodingRequest{
		Address: address,
	}
	results, err := client.Geocode(ctx, req)
	if err != nil {
		return 0, 0, "", fmt.Errorf("geocoding %q: %w", address, err)
	}
	if len(results) == 0 {
		return 0, 0, "", fmt.Errorf("no geocode results for %q", address)
	}

	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, results[0].FormattedAddress, nil
}
