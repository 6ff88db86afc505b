package service

import "github.com/Equity1137/deep-x-check/internal/domain/model"

// RiskOutput contains the result of scoring one profile.
type RiskOutput struct {
	Findings []model.Finding
	Score    int
}

// Scorer defines the interface for risk scoring strategies.
// Both RuleScorer (pattern checks) and HybridScorer (patterns + bio
// classifier) implement this.
type Scorer interface {
	Score(p model.Profile) RiskOutput
}
