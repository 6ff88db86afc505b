package rest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Equity1137/deep-x-check/internal/application/dto"
)

func sampleReport(mode string) dto.AnalysisReport {
	return dto.AnalysisReport{
		ID: uuid.New(),
		Meta: dto.ReportMeta{
			Tool:         dto.ReportTool,
			Version:      dto.ReportVersion,
			Mode:         mode,
			AnalysisDate: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
			Disclaimer:   "EXPERT MODE - IDENTIFYING DATA VISIBLE",
		},
		RiskAssessment: dto.RiskAssessment{
			Score:         7,
			Level:         "HIGH",
			RedFlagsCount: 2,
		},
		Profile: dto.ProfileDTO{
			Username:         "@ExampleUser",
			DisplayName:      "Example",
			Bio:              "Send me CashApp for blessing $$$",
			DeclaredLocation: "New York, USA",
		},
		RedFlags: []dto.FindingDTO{
			{Category: "geo_mismatch", Severity: "high", Message: "Declared location and technical location resolve to different countries", ScoreImpact: 3},
			{Category: "scam_bio", Severity: "medium", Message: "Bio contains scam keywords", ScoreImpact: 1},
		},
		Recommendation: "AVOID",
		Guidance:       []string{"Avoid any financial interaction with this account"},
	}
}

func TestRenderText(t *testing.T) {
	t.Run("investigation report shows the profile block", func(t *testing.T) {
		out := RenderText(sampleReport("INVESTIGATION"))

		assert.Contains(t, out, "DEEPXCHECK ANALYSIS REPORT")
		assert.Contains(t, out, "MODE: INVESTIGATION")
		assert.Contains(t, out, "RISK SCORE: 7/10 - HIGH")
		assert.Contains(t, out, "Red flags detected: 2")
		assert.Contains(t, out, "@ExampleUser")
		assert.Contains(t, out, "1. [HIGH]")
		assert.Contains(t, out, "2. [MEDIUM]")
		assert.Contains(t, out, "RECOMMENDATION: AVOID")
		assert.Contains(t, out, "End of report - Use responsibly")
		assert.NotContains(t, out, "EXPERT MODE DISCLAIMER")
	})

	t.Run("discovery report omits the profile block", func(t *testing.T) {
		out := RenderText(sampleReport("DISCOVERY"))
		assert.NotContains(t, out, "PROFILE:")
		assert.NotContains(t, out, "@ExampleUser")
	})

	t.Run("expert report carries the disclaimer", func(t *testing.T) {
		out := RenderText(sampleReport("EXPERT"))
		assert.Contains(t, out, "EXPERT MODE DISCLAIMER:")
		assert.Contains(t, out, "IDENTIFYING DATA VISIBLE")
	})

	t.Run("long bios are truncated", func(t *testing.T) {
		report := sampleReport("EXPERT")
		long := make([]rune, 150)
		for i := range long {
			long[i] = 'x'
		}
		report.Profile.Bio = string(long)

		out := RenderText(report)
		assert.Contains(t, out, string(long[:100])+"...")
		assert.NotContains(t, out, string(long))
	})

	t.Run("empty fields render as N/A", func(t *testing.T) {
		report := sampleReport("EXPERT")
		report.Profile.TechnicalLocation = ""

		out := RenderText(report)
		assert.Contains(t, out, "N/A")
	})
}
