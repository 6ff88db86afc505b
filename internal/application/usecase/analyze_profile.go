package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Equity1137/deep-x-check/internal/application/dto"
	"github.com/Equity1137/deep-x-check/internal/domain/model"
	"github.com/Equity1137/deep-x-check/internal/domain/port"
	"github.com/Equity1137/deep-x-check/internal/domain/service"
	"github.com/Equity1137/deep-x-check/internal/domain/valueobject"
	"github.com/Equity1137/deep-x-check/pkg/observability"
)

// AnalyzeProfile is the use case for scoring a profile and producing a
// mode-filtered report.
type AnalyzeProfile struct {
	repo     port.AnalysisRepository
	scorer   service.Scorer
	redactor *service.Redactor
	metrics  *observability.AnalysisMetrics
}

// NewAnalyzeProfile creates a new AnalyzeProfile use case. metrics may be nil.
func NewAnalyzeProfile(
	repo port.AnalysisRepository,
	scorer service.Scorer,
	redactor *service.Redactor,
	metrics *observability.AnalysisMetrics,
) *AnalyzeProfile {
	return &AnalyzeProfile{
		repo:     repo,
		scorer:   scorer,
		redactor: redactor,
		metrics:  metrics,
	}
}

// Execute validates the request, scores the profile, persists the analysis
// together with its domain events, and returns the redacted report.
// Validation failures come back as *valueobject.UnknownModeError or
// *model.InvalidInputError.
func (uc *AnalyzeProfile) Execute(ctx context.Context, req dto.AnalyzeProfileRequest) (dto.AnalysisReport, error) {
	mode, err := valueobject.ModeFromString(req.Mode)
	if err != nil {
		return dto.AnalysisReport{}, err
	}

	analysis, err := model.NewProfileAnalysis(req.Profile.ToModel(), mode)
	if err != nil {
		return dto.AnalysisReport{}, err
	}

	started := time.Now()
	output := uc.scorer.Score(analysis.Profile())

	if err := analysis.Complete(output.Score, output.Findings); err != nil {
		return dto.AnalysisReport{}, fmt.Errorf("failed to complete analysis: %w", err)
	}

	// Save stages the domain events in the outbox within the same
	// transaction; the relay publishes them afterwards.
	if err := uc.repo.Save(ctx, analysis); err != nil {
		return dto.AnalysisReport{}, fmt.Errorf("failed to save analysis: %w", err)
	}

	uc.metrics.RecordAnalysis(ctx, mode.String(), analysis.RiskLevel().String(), time.Since(started))

	return dto.NewAnalysisReport(analysis, uc.redactor), nil
}
