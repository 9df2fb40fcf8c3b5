package assessment

import "github.com/diacare/diacare/internal/platform/schema"

// RiskLevel buckets a foot-risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// Assessment is one recorded foot-risk assessment for a patient. Scoring
// itself happens outside this system; only the resulting record is
// persisted and listed.
type Assessment struct {
	ID              schema.ID   `json:"id,omitempty"`
	PatientID       schema.ID   `json:"patientId,omitempty"`
	RiskLevel       RiskLevel   `json:"riskLevel" validate:"required,oneof=low moderate high"`
	Score           float64     `json:"score"`
	Recommendations []string    `json:"recommendations,omitempty"`
	ModelVersion    string      `json:"modelVersion,omitempty"`
	AssessedAt      schema.Time `json:"assessedAt"`
}

// HistoryLimit caps how many past assessments a listing returns.
const HistoryLimit = 20
