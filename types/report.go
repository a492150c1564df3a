package types

// IncidentReport is the submission draft posted from the report form. The
// service treats it as an opaque payload: beyond required-field checks at the
// transport edge there is no validation logic here.
type IncidentReport struct {
	ID              string `json:"id,omitempty" firestore:"-"`
	Title           string `json:"title" firestore:"title"`
	Description     string `json:"description" firestore:"description"`
	Date            string `json:"date" firestore:"date"`
	Category        string `json:"category" firestore:"category"`
	Severity        string `json:"severity" firestore:"severity"`
	InstitutionName string `json:"institutionName" firestore:"institutionName"`
	InstitutionType string `json:"institutionType" firestore:"institutionType"`
	State           string `json:"state" firestore:"state"`
	City            string `json:"city" firestore:"city"`
	Location        string `json:"location" firestore:"location"`
	ReporterName    string `json:"reporterName" firestore:"reporterName"`
	ReporterEmail   string `json:"reporterEmail" firestore:"reporterEmail"`
	ReporterRole    string `json:"reporterRole" firestore:"reporterRole"`

	// Filled in by the service when geocoding succeeds.
	Latitude    float64 `json:"latitude,omitempty" firestore:"lat"`
	Longitude   float64 `json:"longitude,omitempty" firestore:"long"`
	SubmittedAt string  `json:"submittedAt,omitempty" firestore:"submittedAt"`
}
