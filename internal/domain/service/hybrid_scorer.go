package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Equity1137/deep-x-check/internal/domain/model"
	"github.com/Equity1137/deep-x-check/internal/domain/port"
	"github.com/Equity1137/deep-x-check/internal/domain/valueobject"
)

// escalationProbability is the classifier confidence above which the
// bio_language finding carries the escalated weight.
const escalationProbability = 0.9

// HybridScorer combines rule-based scoring with a bio-language classifier.
// If the classifier fails, it falls back to rules-only scoring.
type HybridScorer struct {
	rules      *RuleScorer
	classifier port.BioClassifier
	threshold  float64
	logger     *slog.Logger
}

// NewHybridScorer creates a HybridScorer. The threshold is the minimum
// classifier probability, in [0,1], at which a bio_language finding is added.
func NewHybridScorer(rules *RuleScorer, classifier port.BioClassifier, threshold float64, logger *slog.Logger) *HybridScorer {
	return &HybridScorer{
		rules:      rules,
		classifier: classifier,
		threshold:  threshold,
		logger:     logger,
	}
}

// Score runs the rule checks, then consults the classifier. A bio_language
// finding is added only when the keyword check found nothing, so the score
// stays a pure function of the findings.
func (h *HybridScorer) Score(p model.Profile) RiskOutput {
	// Always run rules first.
	rulesOutput := h.rules.Score(p)

	probability, err := h.classifier.Classify(context.Background(), p.Bio)
	if err != nil {
		h.logger.Warn("bio classification failed, using rules-only scoring", "error", err)
		return rulesOutput
	}

	if probability < h.threshold {
		return rulesOutput
	}
	for _, f := range rulesOutput.Findings {
		// The keyword check already covers this bio.
		if f.Category.Equal(valueobject.CategoryScamBio) {
			return rulesOutput
		}
	}

	weight := 1
	if probability >= escalationProbability {
		weight = 2
	}

	findings := make([]model.Finding, len(rulesOutput.Findings), len(rulesOutput.Findings)+1)
	copy(findings, rulesOutput.Findings)
	findings = append(findings, model.Finding{
		Category: valueobject.CategoryBioLanguage,
		Severity: valueobject.SeverityMedium,
		Weight:   weight,
		Message:  fmt.Sprintf("Bio language resembles known scam phrasing (probability %.2f)", probability),
	})

	score := rulesOutput.Score + weight
	if score > h.rules.maxScore {
		score = h.rules.maxScore
	}

	return RiskOutput{
		Score:    score,
		Findings: findings,
	}
}
