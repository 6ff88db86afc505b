package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Equity1137/deep-x-check/pkg/events"
)

const (
	// TypeAnalysisCompleted is emitted when a profile analysis finishes scoring.
	TypeAnalysisCompleted = "deepxcheck.analysis.completed"

	// TypeHighRiskDetected is emitted when an analysis lands on a CRITICAL risk level.
	TypeHighRiskDetected = "deepxcheck.analysis.high_risk_detected"
)

const AggregateTypeProfileAnalysis = "profile_analysis"

// AnalysisCompleted is published after every finished analysis. The payload
// intentionally carries no usernames or profile text; downstream consumers
// needing profile data must fetch the analysis by ID under their own
// authorization.
type AnalysisCompleted struct {
	events.BaseEvent
	AnalysisID     uuid.UUID `json:"analysis_id"`
	Mode           string    `json:"mode"`
	RiskScore      int       `json:"risk_score"`
	RiskLevel      string    `json:"risk_level"`
	Recommendation string    `json:"recommendation"`
	Categories     []string  `json:"categories"`
	AnalyzedAt     time.Time `json:"analyzed_at"`
}

// NewAnalysisCompleted creates an AnalysisCompleted domain event.
func NewAnalysisCompleted(
	analysisID uuid.UUID,
	mode string,
	riskScore int,
	riskLevel, recommendation string,
	categories []string,
	analyzedAt time.Time,
) AnalysisCompleted {
	payload, _ := json.Marshal(struct {
		AnalysisID     uuid.UUID `json:"analysis_id"`
		Mode           string    `json:"mode"`
		RiskScore      int       `json:"risk_score"`
		RiskLevel      string    `json:"risk_level"`
		Recommendation string    `json:"recommendation"`
		Categories     []string  `json:"categories"`
		AnalyzedAt     time.Time `json:"analyzed_at"`
	}{analysisID, mode, riskScore, riskLevel, recommendation, categories, analyzedAt})

	return AnalysisCompleted{
		BaseEvent:      events.NewBaseEvent(TypeAnalysisCompleted, analysisID, AggregateTypeProfileAnalysis, payload),
		AnalysisID:     analysisID,
		Mode:           mode,
		RiskScore:      riskScore,
		RiskLevel:      riskLevel,
		Recommendation: recommendation,
		Categories:     categories,
		AnalyzedAt:     analyzedAt,
	}
}

// HighRiskDetected is published in addition to AnalysisCompleted when the
// risk level is CRITICAL, so alerting pipelines can subscribe to it alone.
type HighRiskDetected struct {
	events.BaseEvent
	AnalysisID uuid.UUID `json:"analysis_id"`
	Mode       string    `json:"mode"`
	RiskScore  int       `json:"risk_score"`
	Categories []string  `json:"categories"`
	DetectedAt time.Time `json:"detected_at"`
}

// NewHighRiskDetected creates a HighRiskDetected domain event.
func NewHighRiskDetected(
	analysisID uuid.UUID,
	mode string,
	riskScore int,
	categories []string,
	detectedAt time.Time,
) HighRiskDetected {
	payload, _ := json.Marshal(struct {
		AnalysisID uuid.UUID `json:"analysis_id"`
		Mode       string    `json:"mode"`
		RiskScore  int       `json:"risk_score"`
		Categories []string  `json:"categories"`
		DetectedAt time.Time `json:"detected_at"`
	}{analysisID, mode, riskScore, categories, detectedAt})

	return HighRiskDetected{
		BaseEvent:  events.NewBaseEvent(TypeHighRiskDetected, analysisID, AggregateTypeProfileAnalysis, payload),
		AnalysisID: analysisID,
		Mode:       mode,
		RiskScore:  riskScore,
		Categories: categories,
		DetectedAt: detectedAt,
	}
}
