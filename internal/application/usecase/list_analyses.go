package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Equity1137/deep-x-check/internal/application/dto"
	"github.com/Equity1137/deep-x-check/internal/domain/model"
	"github.com/Equity1137/deep-x-check/internal/domain/port"
	"github.com/Equity1137/deep-x-check/internal/domain/service"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ListAnalyses is the use case for retrieving the analysis history of a
// profile, newest first.
type ListAnalyses struct {
	repo     port.AnalysisRepository
	redactor *service.Redactor
}

// NewListAnalyses creates a new ListAnalyses use case.
func NewListAnalyses(repo port.AnalysisRepository, redactor *service.Redactor) *ListAnalyses {
	return &ListAnalyses{repo: repo, redactor: redactor}
}

// Execute lists analyses for a username. A non-positive limit falls back to
// the default; limits above the maximum are clamped.
func (uc *ListAnalyses) Execute(ctx context.Context, username string, limit, offset int) ([]dto.AnalysisSummary, error) {
	if strings.TrimSpace(username) == "" {
		return nil, &model.InvalidInputError{Field: "username", Reason: "is required"}
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	analyses, err := uc.repo.FindByUsername(ctx, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	summaries := make([]dto.AnalysisSummary, len(analyses))
	for i, analysis := range analyses {
		summaries[i] = dto.NewAnalysisSummary(analysis, uc.redactor)
	}

	return summaries, nil
}
