package population

import "github.com/diacare/diacare/internal/platform/schema"

// AnonymityThreshold is the minimum group size a statistic needs before it
// is reported under its own name.
const AnonymityThreshold = 5

// TopMedicationCount caps the ranked medication view.
const TopMedicationCount = 10

type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type BandAverage struct {
	Band     string  `json:"band"`
	Patients int     `json:"patients"`
	Average  float64 `json:"average"`
}

type TrendPoint struct {
	Month   string  `json:"month"`
	Average float64 `json:"average"`
}

type VolumePoint struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Stats is the full anonymized population summary. Every view is aggregated
// past the anonymity threshold independently; no per-patient value appears.
type Stats struct {
	GeneratedAt       schema.Time     `json:"generatedAt"`
	TotalPatients     int             `json:"totalPatients"`
	DiabetesTypes     []CategoryCount `json:"diabetesTypes"`
	GlucoseByAgeBand  []BandAverage   `json:"glucoseByAgeBand"`
	GlucoseTrend      []TrendPoint    `json:"glucoseTrend"`
	TopMedications    []CategoryCount `json:"topMedications"`
	AppointmentVolume []VolumePoint   `json:"appointmentVolume"`
}
