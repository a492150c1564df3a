package types

import "time"

type Severity string

const (
	Low      Severity = "low"
	Medium   Severity = "medium"
	High     Severity = "high"
	Critical Severity = "critical"
)

// Label returns the display name used by the dashboard and exports.
func (s Severity) Label() string {
	switch s {
	case Low:
		return "Bajo"
	case Medium:
		return "Medio"
	case High:
		return "Alto"
	case Critical:
		return "Crítico"
	}
	return string(s)
}

type InstitutionType string

const (
	Elementary InstitutionType = "elementary"
	Middle     InstitutionType = "middle"
	HighSchool InstitutionType = "high"
	University InstitutionType = "university"
)

func (t InstitutionType) Label() string {
	switch t {
	case Elementary:
		return "Primaria"
	case Middle:
		return "Secundaria"
	case HighSchool:
		return "Preparatoria"
	case University:
		return "Universidad"
	}
	return string(t)
}

// SourceLabel identifies the backing dataset on every normalized incident.
const SourceLabel = "School Incident Database"

// SchoolIncident is the wide, flat record as it arrives from the incident
// database. Most fields are passed through untouched; the dashboard only ever
// derives from a handful of them.
type SchoolIncident struct {
	UID           string `json:"uid" firestore:"uid"`
	NCESSchoolID  string `json:"nces_school_id" firestore:"ncesSchoolId"`
	SchoolName    string `json:"school_name" firestore:"schoolName"`
	NCESDistrict  string `json:"nces_district_id" firestore:"ncesDistrictId"`
	DistrictName  string `json:"district_name" firestore:"districtName"`
	Date          string `json:"date" firestore:"date"`
	SchoolYear    string `json:"school_year" firestore:"schoolYear"`
	Year          int    `json:"year" firestore:"year"`
	Time          string `json:"time" firestore:"time"`
	DayOfWeek     string `json:"day_of_week" firestore:"dayOfWeek"`
	City          string `json:"city" firestore:"city"`
	State         string `json:"state" firestore:"state"`
	SchoolType    string `json:"school_type" firestore:"schoolType"`
	Enrollment    int    `json:"enrollment" firestore:"enrollment"`
	Killed        int    `json:"killed" firestore:"killed"`
	Injured       int    `json:"injured" firestore:"injured"`
	Casualties    int    `json:"casualties" firestore:"casualties"`
	ShootingType  string `json:"shooting_type" firestore:"shootingType"`

	AgeShooter1           *int    `json:"age_shooter1,omitempty" firestore:"ageShooter1,omitempty"`
	GenderShooter1        string  `json:"gender_shooter1,omitempty" firestore:"genderShooter1,omitempty"`
	RaceEthnicityShooter1 string  `json:"race_ethnicity_shooter1,omitempty" firestore:"raceEthnicityShooter1,omitempty"`
	ShooterRelationship1  string  `json:"shooter_relationship1,omitempty" firestore:"shooterRelationship1,omitempty"`
	ShooterDeceased1      *bool   `json:"shooter_deceased1,omitempty" firestore:"shooterDeceased1,omitempty"`
	DeceasedNotes1        string  `json:"deceased_notes1,omitempty" firestore:"deceasedNotes1,omitempty"`
	AgeShooter2           *int    `json:"age_shooter2,omitempty" firestore:"ageShooter2,omitempty"`
	GenderShooter2        string  `json:"gender_shooter2,omitempty" firestore:"genderShooter2,omitempty"`
	RaceEthnicityShooter2 string  `json:"race_ethnicity_shooter2,omitempty" firestore:"raceEthnicityShooter2,omitempty"`
	ShooterRelationship2  string  `json:"shooter_relationship2,omitempty" firestore:"shooterRelationship2,omitempty"`
	ShooterDeceased2      *bool   `json:"shooter_deceased2,omitempty" firestore:"shooterDeceased2,omitempty"`
	DeceasedNotes2        string  `json:"deceased_notes2,omitempty" firestore:"deceasedNotes2,omitempty"`

	// Racial/ethnic enrollment breakdown.
	White                         int `json:"white" firestore:"white"`
	Black                         int `json:"black" firestore:"black"`
	Hispanic                      int `json:"hispanic" firestore:"hispanic"`
	Asian                         int `json:"asian" firestore:"asian"`
	AmericanIndianAlaskaNative    int `json:"american_indian_alaska_native" firestore:"americanIndianAlaskaNative"`
	HawaiianNativePacificIslander int `json:"hawaiian_native_pacific_islander" firestore:"hawaiianNativePacificIslander"`
	TwoOrMore                     int `json:"two_or_more" firestore:"twoOrMore"`

	ResourceOfficer bool    `json:"resource_officer" firestore:"resourceOfficer"`
	Weapon          string  `json:"weapon" firestore:"weapon"`
	WeaponSource    string  `json:"weapon_source" firestore:"weaponSource"`
	Lat             float64 `json:"lat" firestore:"lat"`
	Long            float64 `json:"long" firestore:"long"`
	Staffing        int     `json:"staffing" firestore:"staffing"`
	LowGrade        string  `json:"low_grade" firestore:"lowGrade"`
	HighGrade       string  `json:"high_grade" firestore:"highGrade"`
	Lunch           string  `json:"lunch" firestore:"lunch"`
	County          string  `json:"county" firestore:"county"`
	StateFIPS       string  `json:"state_fips" firestore:"stateFips"`
	CountyFIPS      string  `json:"county_fips" firestore:"countyFips"`
	ULocale         string  `json:"ulocale" firestore:"ulocale"`
}

// Shooter is the perpetrator sub-record shape served by the detail endpoint.
type Shooter struct {
	IncidentUID   string `json:"incident_uid"`
	Age           *int   `json:"age,omitempty"`
	Gender        string `json:"gender,omitempty"`
	RaceEthnicity string `json:"race_ethnicity,omitempty"`
	Relationship  string `json:"relationship,omitempty"`
	Deceased      *bool  `json:"deceased,omitempty"`
	DeceasedNotes string `json:"deceased_notes,omitempty"`
	Weapon        string `json:"weapon,omitempty"`
	WeaponSource  string `json:"weapon_source,omitempty"`
}

// Shooters extracts the populated perpetrator sub-records. A second shooter
// without a first is a data-quality quirk and is still returned.
func (r *SchoolIncident) Shooters() []Shooter {
	var out []Shooter
	if r.AgeShooter1 != nil || r.GenderShooter1 != "" || r.RaceEthnicityShooter1 != "" || r.ShooterRelationship1 != "" {
		out = append(out, Shooter{
			IncidentUID:   r.UID,
			Age:           r.AgeShooter1,
			Gender:        r.GenderShooter1,
			RaceEthnicity: r.RaceEthnicityShooter1,
			Relationship:  r.ShooterRelationship1,
			Deceased:      r.ShooterDeceased1,
			DeceasedNotes: r.DeceasedNotes1,
			Weapon:        r.Weapon,
			WeaponSource:  r.WeaponSource,
		})
	}
	if r.AgeShooter2 != nil || r.GenderShooter2 != "" || r.RaceEthnicityShooter2 != "" || r.ShooterRelationship2 != "" {
		out = append(out, Shooter{
			IncidentUID:   r.UID,
			Age:           r.AgeShooter2,
			Gender:        r.GenderShooter2,
			RaceEthnicity: r.RaceEthnicityShooter2,
			Relationship:  r.ShooterRelationship2,
			Deceased:      r.ShooterDeceased2,
			DeceasedNotes: r.DeceasedNotes2,
		})
	}
	return out
}

// Incident is the narrow display record derived once per raw record. It is
// never mutated after construction; filters and aggregations read only these
// fields, never the raw back-reference.
type Incident struct {
	ID              string          `json:"id"`
	Date            string          `json:"date"`
	InstitutionName string          `json:"institutionName"`
	City            string          `json:"city"`
	State           string          `json:"state"`
	AffectedCount   int             `json:"affectedCount"`
	Latitude        float64         `json:"latitude"`
	Longitude       float64         `json:"longitude"`
	Source          string          `json:"source"`
	InstitutionType InstitutionType `json:"institutionType"`
	Severity        Severity        `json:"severity"`
	Description     string          `json:"description,omitempty"`

	// OccurredAt is the parsed Date; zero (and HasDate false) when the raw
	// date did not parse. Such records stay out of date-dependent views but
	// remain in the table and state aggregates.
	OccurredAt time.Time `json:"-"`
	HasDate    bool      `json:"-"`

	// Raw points back at the originating record, for detail rendering only.
	Raw *SchoolIncident `json:"csvData,omitempty"`
}

// PeriodKey returns the "YYYY-MM" month bucket, or "" when the date is invalid.
func (in *Incident) PeriodKey() string {
	if !in.HasDate {
		return ""
	}
	return in.OccurredAt.Format("2006-01")
}

// HasCoordinates reports whether the incident can be placed on the map.
// (0,0) doubles as "missing" in the source data.
func (in *Incident) HasCoordinates() bool {
	if in.Latitude == 0 && in.Longitude == 0 {
		return false
	}
	return in.Latitude >= -90 && in.Latitude <= 90 && in.Longitude >= -180 && in.Longitude <= 180
}
