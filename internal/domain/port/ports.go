package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/Equity1137/deep-x-check/internal/domain/model"
)

// AnalysisRepository defines the persistence port for profile analyses.
type AnalysisRepository interface {
	// Save persists a new or updated analysis together with its pending
	// domain events, atomically.
	Save(ctx context.Context, analysis *model.ProfileAnalysis) error

	// FindByID retrieves an analysis by its unique identifier. It returns
	// nil without error when no analysis matches.
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProfileAnalysis, error)

	// FindByUsername retrieves the analysis history for a profile, newest first.
	FindByUsername(ctx context.Context, username string, limit, offset int) ([]*model.ProfileAnalysis, error)
}

// BioClassifier defines the port for an external scam-language classifier.
// Implementations return the probability, in [0,1], that the bio text is
// scam-coordinated language.
type BioClassifier interface {
	Classify(ctx context.Context, bio string) (probability float64, err error)
}
