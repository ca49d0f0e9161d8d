package models

// RiskLevel is the severity bucket derived from a risk score
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// RiskLevelForScore maps a bounded score to its severity bucket
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score >= 70:
		return RiskLevelCritical
	case score >= 45:
		return RiskLevelHigh
	case score >= 20:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// RiskAssessment is the result of running the anomaly rules against a batch's
// scan history. IsSuspicious tracks rule activation, not the numeric score:
// any fired rule marks the assessment suspicious even when the summed score
// stays low.
type RiskAssessment struct {
	RiskScore    int       `json:"risk_score"`
	RiskLevel    RiskLevel `json:"risk_level"`
	Flags        []string  `json:"flags"`
	IsSuspicious bool      `json:"is_suspicious"`
}
