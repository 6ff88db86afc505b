package classifier

import (
	"context"
	"log/slog"

	"github.com/Equity1137/deep-x-check/internal/domain/port"
)

// NeutralProbability is the stub's default answer: below every sensible
// escalation threshold, so the rule checks stay the source of truth.
const NeutralProbability = 0.5

// Compile-time interface check.
var _ port.BioClassifier = (*StubBioClassifier)(nil)

// StubBioClassifier implements port.BioClassifier as a stub for development.
// In production, this would call an external text classification service.
type StubBioClassifier struct {
	logger      *slog.Logger
	probability float64
}

// NewStubBioClassifier creates a stub classifier that always reports the
// given scam-language probability. The stub is deterministic so that hybrid
// scoring stays reproducible in tests and development.
func NewStubBioClassifier(probability float64, logger *slog.Logger) *StubBioClassifier {
	return &StubBioClassifier{
		probability: probability,
		logger:      logger,
	}
}

// Classify returns the configured probability regardless of the bio text.
// In production, this would send the text to a trained model.
func (c *StubBioClassifier) Classify(ctx context.Context, bio string) (float64, error) {
	c.logger.Debug("stub bio classification requested",
		slog.Int("bio_length", len(bio)),
	)
	return c.probability, nil
}
