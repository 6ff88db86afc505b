package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Equity1137/deep-x-check/internal/domain/service"
)

// rulesFile mirrors the YAML rules document. Zero values mean "keep the
// built-in default".
type rulesFile struct {
	GeoIndicators []struct {
		Country    string   `yaml:"country"`
		Indicators []string `yaml:"indicators"`
	} `yaml:"geo_indicators"`
	TelegramPatterns      []string `yaml:"telegram_patterns"`
	ScamKeywords          []string `yaml:"scam_keywords"`
	RatioThreshold        float64  `yaml:"ratio_threshold"`
	RecentFollowersMin    int      `yaml:"recent_followers_min"`
	NameChangesMin        int      `yaml:"name_changes_min"`
	SharedChannelsMin     int      `yaml:"shared_channels_min"`
	ScamKeywordEscalation int      `yaml:"scam_keyword_escalation"`
	MaxScore              int      `yaml:"max_score"`
}

// LoadRules reads the YAML rules document at path and overlays it on the
// built-in defaults. An empty path returns the defaults unchanged. On a read
// or parse error the defaults are returned together with the error, so the
// caller can log a warning and keep running.
func LoadRules(path string) (service.RuleConfig, error) {
	cfg := service.DefaultRuleConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read rules file %q: %w", path, err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return cfg, fmt.Errorf("failed to parse rules file %q: %w", path, err)
	}

	return mergeRules(cfg, file), nil
}

func mergeRules(base service.RuleConfig, override rulesFile) service.RuleConfig {
	if len(override.GeoIndicators) > 0 {
		indicators := make([]service.GeoIndicator, len(override.GeoIndicators))
		for i, gi := range override.GeoIndicators {
			indicators[i] = service.GeoIndicator{Country: gi.Country, Indicators: gi.Indicators}
		}
		base.GeoIndicators = indicators
	}
	if len(override.TelegramPatterns) > 0 {
		base.TelegramPatterns = override.TelegramPatterns
	}
	if len(override.ScamKeywords) > 0 {
		base.ScamKeywords = override.ScamKeywords
	}
	if override.RatioThreshold > 0 {
		base.RatioThreshold = decimal.NewFromFloat(override.RatioThreshold)
	}
	if override.RecentFollowersMin > 0 {
		base.RecentFollowersMin = override.RecentFollowersMin
	}
	if override.NameChangesMin > 0 {
		base.NameChangesMin = override.NameChangesMin
	}
	if override.SharedChannelsMin > 0 {
		base.SharedChannelsMin = override.SharedChannelsMin
	}
	if override.ScamKeywordEscalation > 0 {
		base.ScamKeywordEscalation = override.ScamKeywordEscalation
	}
	if override.MaxScore > 0 {
		// Completed analyses reject scores above 10, so the cap stays within it.
		base.MaxScore = override.MaxScore
		if base.MaxScore > 10 {
			base.MaxScore = 10
		}
	}
	return base
}
