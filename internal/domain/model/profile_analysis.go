package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Equity1137/deep-x-check/internal/domain/event"
	"github.com/Equity1137/deep-x-check/internal/domain/valueobject"
	"github.com/Equity1137/deep-x-check/pkg/events"
)

// ProfileAnalysis is the aggregate root for profile risk analyses.
type ProfileAnalysis struct {
	analyzedAt     time.Time
	createdAt      time.Time
	updatedAt      time.Time
	profile        Profile
	findings       []Finding
	domainEvents   events.Collector
	mode           valueobject.Mode
	riskLevel      valueobject.RiskLevel
	recommendation valueobject.Recommendation
	riskScore      int
	version        int
	id             uuid.UUID
}

// NewProfileAnalysis creates a new analysis for an incoming profile.
// The analysis starts unscored; call Complete() to apply a scoring result.
func NewProfileAnalysis(profile Profile, mode valueobject.Mode) (*ProfileAnalysis, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if mode.IsZero() {
		return nil, &InvalidInputError{Field: "mode", Reason: "is required"}
	}
	if mode.Equal(valueobject.ModeExpert) && profile.DeclaredLocation != "" && profile.TechnicalLocation == "" {
		return nil, &InvalidInputError{
			Field:  "technical_location",
			Reason: "is required in EXPERT mode when declared_location is set",
		}
	}

	now := time.Now().UTC()

	return &ProfileAnalysis{
		id:             uuid.New(),
		profile:        profile,
		mode:           mode,
		findings:       make([]Finding, 0),
		riskScore:      0,
		riskLevel:      valueobject.RiskLevelMinimal,
		recommendation: valueobject.Recommendation{},
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// Complete applies a scoring result to the analysis, deriving the risk level
// and recommendation. This is the core domain operation.
func (a *ProfileAnalysis) Complete(riskScore int, findings []Finding) error {
	if riskScore < 0 || riskScore > 10 {
		return fmt.Errorf("risk score must be between 0 and 10, got %d", riskScore)
	}

	a.riskScore = riskScore
	a.findings = findings
	a.riskLevel = valueobject.RiskLevelFromScore(riskScore)
	a.recommendation = valueobject.RecommendationFromScore(riskScore)
	a.analyzedAt = time.Now().UTC()
	a.updatedAt = a.analyzedAt
	a.version++

	categories := a.FindingCategories()

	a.domainEvents.Record(event.NewAnalysisCompleted(
		a.id, a.mode.String(),
		a.riskScore, a.riskLevel.String(), a.recommendation.String(),
		categories, a.analyzedAt,
	))

	// Emit HighRiskDetected if the risk level is CRITICAL.
	if a.riskLevel.Equal(valueobject.RiskLevelCritical) {
		a.domainEvents.Record(event.NewHighRiskDetected(
			a.id, a.mode.String(), a.riskScore, categories, a.analyzedAt,
		))
	}

	return nil
}

// Reconstruct rebuilds a ProfileAnalysis from persisted data (no validation, no events).
func Reconstruct(
	id uuid.UUID,
	profile Profile,
	mode valueobject.Mode,
	findings []Finding,
	riskScore int,
	riskLevel valueobject.RiskLevel,
	recommendation valueobject.Recommendation,
	analyzedAt time.Time,
	version int,
	createdAt, updatedAt time.Time,
) *ProfileAnalysis {
	return &ProfileAnalysis{
		id:             id,
		profile:        profile,
		mode:           mode,
		findings:       findings,
		riskScore:      riskScore,
		riskLevel:      riskLevel,
		recommendation: recommendation,
		analyzedAt:     analyzedAt,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// FindingCategories returns the category tags of all findings, in finding order.
func (a *ProfileAnalysis) FindingCategories() []string {
	categories := make([]string, 0, len(a.findings))
	for _, f := range a.findings {
		categories = append(categories, f.Category.String())
	}
	return categories
}

// --- Accessors ---

func (a *ProfileAnalysis) ID() uuid.UUID                              { return a.id }
func (a *ProfileAnalysis) Profile() Profile                           { return a.profile }
func (a *ProfileAnalysis) Mode() valueobject.Mode                     { return a.mode }
func (a *ProfileAnalysis) Findings() []Finding                        { return a.findings }
func (a *ProfileAnalysis) RiskScore() int                             { return a.riskScore }
func (a *ProfileAnalysis) RiskLevel() valueobject.RiskLevel           { return a.riskLevel }
func (a *ProfileAnalysis) Recommendation() valueobject.Recommendation { return a.recommendation }
func (a *ProfileAnalysis) AnalyzedAt() time.Time                      { return a.analyzedAt }
func (a *ProfileAnalysis) Version() int                               { return a.version }
func (a *ProfileAnalysis) CreatedAt() time.Time                       { return a.createdAt }
func (a *ProfileAnalysis) UpdatedAt() time.Time                       { return a.updatedAt }

// DomainEvents returns all accumulated domain events and clears them.
func (a *ProfileAnalysis) DomainEvents() []events.DomainEvent {
	return a.domainEvents.Drain()
}
