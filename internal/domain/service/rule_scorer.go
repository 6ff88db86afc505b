package service

import "github.com/Equity1137/deep-x-check/internal/domain/model"

// RuleScorer is a domain service that scores profiles by running every
// registered pattern check and summing the finding weights, capped at the
// configured maximum. Deterministic: checks run in registration order and
// touch nothing but the profile.
type RuleScorer struct {
	checks   []Check
	maxScore int
}

// NewRuleScorer creates a RuleScorer with the full built-in check set.
func NewRuleScorer(cfg RuleConfig) *RuleScorer {
	return &RuleScorer{
		checks: []Check{
			NewGeoMismatchCheck(cfg.GeoIndicators),
			NewSuspiciousGrowthCheck(cfg.RecentFollowersMin, nil),
			NewIdentityInstabilityCheck(cfg.NameChangesMin),
			NewTelegramPromotionCheck(cfg.TelegramPatterns),
			NewScamBioCheck(cfg.ScamKeywords, cfg.ScamKeywordEscalation),
			NewUnbalancedRatioCheck(cfg.RatioThreshold),
			NewCoordinatedNetworkCheck(cfg.SharedChannelsMin),
			NewLikeFishingCheck(),
		},
		maxScore: cfg.MaxScore,
	}
}

// Score runs all checks against the profile and sums the finding weights.
func (s *RuleScorer) Score(p model.Profile) RiskOutput {
	findings := make([]model.Finding, 0)
	for _, check := range s.checks {
		findings = append(findings, check.Evaluate(p)...)
	}

	score := 0
	for _, f := range findings {
		score += f.Weight
	}
	if score > s.maxScore {
		score = s.maxScore
	}

	return RiskOutput{
		Score:    score,
		Findings: findings,
	}
}
