package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Equity1137/deep-x-check/internal/application/dto"
	"github.com/Equity1137/deep-x-check/internal/domain/port"
	"github.com/Equity1137/deep-x-check/internal/domain/service"
)

// ErrAnalysisNotFound is returned when no analysis matches the requested ID.
var ErrAnalysisNotFound = errors.New("analysis not found")

// GetAnalysis is the use case for retrieving an existing analysis.
type GetAnalysis struct {
	repo     port.AnalysisRepository
	redactor *service.Redactor
}

// NewGetAnalysis creates a new GetAnalysis use case.
func NewGetAnalysis(repo port.AnalysisRepository, redactor *service.Redactor) *GetAnalysis {
	return &GetAnalysis{repo: repo, redactor: redactor}
}

// Execute retrieves an analysis by ID and re-renders the report with the
// redaction of the mode the analysis was stored under.
func (uc *GetAnalysis) Execute(ctx context.Context, id uuid.UUID) (dto.AnalysisReport, error) {
	analysis, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return dto.AnalysisReport{}, fmt.Errorf("failed to find analysis: %w", err)
	}
	if analysis == nil {
		return dto.AnalysisReport{}, ErrAnalysisNotFound
	}

	return dto.NewAnalysisReport(analysis, uc.redactor), nil
}
