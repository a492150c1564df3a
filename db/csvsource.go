package db

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"go-eduwatch/processor"
	"go-eduwatch/types"
)

// FileSource serves incident snapshots from a local CSV export of the
// incident database. Used when no Firestore credentials are configured. The
// file is parsed once and held in memory; filters are applied per fetch.
type FileSource struct {
	Path string

	once    sync.Once
	loadErr error
	records []types.SchoolIncident
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string {
	return "csv"
}

func (s *FileSource) FetchIncidents(_ context.Context, f types.Filters) ([]types.SchoolIncident, error) {
	s.once.Do(func() {
		s.records, s.loadErr = loadIncidentCSV(s.Path)
		if s.loadErr == nil {
			log.Printf("Loaded %d incidents from %s", len(s.records), s.Path)
		}
	})
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return processor.ApplyFilters(s.records, f), nil
}

func loadIncidentCSV(path string) ([]types.SchoolIncident, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening incident file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, missing cells read as zero values

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	var records []types.SchoolIncident
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Printf("Warning: skipping malformed csv line %d: %v", line, err)
			continue
		}

		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		rec := types.SchoolIncident{
			UID:          field("uid"),
			NCESSchoolID: field("nces_school_id"),
			SchoolName:   field("school_name"),
			NCESDistrict: field("nces_district_id"),
			DistrictName: field("district_name"),
			Date:         field("date"),
			SchoolYear:   field("school_year"),
			Year:         atoi(field("year")),
			Time:         field("time"),
			DayOfWeek:    field("day_of_week"),
			City:         field("city"),
			State:        field("state"),
			SchoolType:   field("school_type"),
			Enrollment:   atoi(field("enrollment")),
			Killed:       atoi(field("killed")),
			Injured:      atoi(field("injured")),
			Casualties:   atoi(field("casualties")),
			ShootingType: field("shooting_type"),

			AgeShooter1:           atoiPtr(field("age_shooter1")),
			GenderShooter1:        field("gender_shooter1"),
			RaceEthnicityShooter1: field("race_ethnicity_shooter1"),
			ShooterRelationship1:  field("shooter_relationship1"),
			ShooterDeceased1:      aboolPtr(field("shooter_deceased1")),
			DeceasedNotes1:        field("deceased_notes1"),
			AgeShooter2:           atoiPtr(field("age_shooter2")),
			GenderShooter2:        field("gender_shooter2"),
			RaceEthnicityShooter2: field("race_ethnicity_shooter2"),
			ShooterRelationship2:  field("shooter_relationship2"),
			ShooterDeceased2:      aboolPtr(field("shooter_deceased2")),
			DeceasedNotes2:        field("deceased_notes2"),

			White:                         atoi(field("white")),
			Black:                         atoi(field("black")),
			Hispanic:                      atoi(field("hispanic")),
			Asian:                         atoi(field("asian")),
			AmericanIndianAlaskaNative:    atoi(field("american_indian_alaska_native")),
			HawaiianNativePacificIslander: atoi(field("hawaiian_native_pacific_islander")),
			TwoOrMore:                     atoi(field("two_or_more")),

			ResourceOfficer: abool(field("resource_officer")),
			Weapon:          field("weapon"),
			WeaponSource:    field("weapon_source"),
			Lat:             atof(field("lat")),
			Long:            atof(field("long")),
			Staffing:        atoi(field("staffing")),
			LowGrade:        field("low_grade"),
			HighGrade:       field("high_grade"),
			Lunch:           field("lunch"),
			County:          field("county"),
			StateFIPS:       field("state_fips"),
			CountyFIPS:      field("county_fips"),
			ULocale:         field("ulocale"),
		}

		if rec.UID == "" {
			log.Printf("Warning: skipping csv line %d with empty uid", line)
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func atoiPtr(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func atof(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func abool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "t", "yes", "y", "1":
		return true
	}
	return false
}

func aboolPtr(s string) *bool {
	if s == "" {
		return nil
	}
	b := abool(s)
	return &b
}
