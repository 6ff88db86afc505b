package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Equity1137/deep-x-check/internal/domain/service"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadRules_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadRules("")

	require.NoError(t, err)
	assert.Equal(t, service.DefaultRuleConfig(), cfg)
}

func TestLoadRules_OverridesSelectedFields(t *testing.T) {
	path := writeRulesFile(t, `
ratio_threshold: 5.5
recent_followers_min: 500
scam_keywords:
  - airdrop
  - rugpull
`)

	cfg, err := LoadRules(path)

	require.NoError(t, err)
	assert.True(t, cfg.RatioThreshold.Equal(decimal.NewFromFloat(5.5)))
	assert.Equal(t, 500, cfg.RecentFollowersMin)
	assert.Equal(t, []string{"airdrop", "rugpull"}, cfg.ScamKeywords)

	// Untouched fields keep the built-in defaults.
	defaults := service.DefaultRuleConfig()
	assert.Equal(t, defaults.MaxScore, cfg.MaxScore)
	assert.Equal(t, defaults.GeoIndicators, cfg.GeoIndicators)
	assert.Equal(t, defaults.TelegramPatterns, cfg.TelegramPatterns)
	assert.Equal(t, defaults.NameChangesMin, cfg.NameChangesMin)
}

func TestLoadRules_OverridesGeoIndicators(t *testing.T) {
	path := writeRulesFile(t, `
geo_indicators:
  - country: germany
    indicators: [germany, berlin, munich]
`)

	cfg, err := LoadRules(path)

	require.NoError(t, err)
	require.Len(t, cfg.GeoIndicators, 1)
	assert.Equal(t, "germany", cfg.GeoIndicators[0].Country)
	assert.Equal(t, []string{"germany", "berlin", "munich"}, cfg.GeoIndicators[0].Indicators)
}

func TestLoadRules_ClampsMaxScore(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want int
	}{
		{name: "within range", yaml: "max_score: 8", want: 8},
		{name: "above cap", yaml: "max_score: 25", want: 10},
		{name: "zero keeps default", yaml: "max_score: 0", want: service.DefaultRuleConfig().MaxScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadRules(writeRulesFile(t, tt.yaml))

			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.MaxScore)
		})
	}
}

func TestLoadRules_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read rules file")
	assert.Equal(t, service.DefaultRuleConfig(), cfg)
}

func TestLoadRules_MalformedYAMLFallsBackToDefaults(t *testing.T) {
	path := writeRulesFile(t, "ratio_threshold: [not a number")

	cfg, err := LoadRules(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse rules file")
	assert.Equal(t, service.DefaultRuleConfig(), cfg)
}
