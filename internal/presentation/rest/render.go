package rest

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Equity1137/deep-x-check/internal/application/dto"
)

const reportRule = "============================================================"

// RenderText formats a report as the plain-text console layout, for
// GET /api/v1/analyses/{id}?format=text.
func RenderText(report dto.AnalysisReport) string {
	var b strings.Builder

	b.WriteString(reportRule + "\n")
	b.WriteString("DEEPXCHECK ANALYSIS REPORT\n")
	b.WriteString(reportRule + "\n\n")

	fmt.Fprintf(&b, "MODE: %s\n", report.Meta.Mode)
	fmt.Fprintf(&b, "Date: %s\n\n", report.Meta.AnalysisDate.UTC().Format("2006-01-02 15:04:05 UTC"))

	fmt.Fprintf(&b, "RISK SCORE: %d/10 - %s\n", report.RiskAssessment.Score, report.RiskAssessment.Level)
	fmt.Fprintf(&b, "Red flags detected: %d\n", report.RiskAssessment.RedFlagsCount)

	// The profile block is omitted in discovery mode; there is nothing left
	// to show once every identifier is anonymized.
	if report.Meta.Mode != "DISCOVERY" {
		b.WriteString("\nPROFILE:\n")
		tw := tabwriter.NewWriter(&b, 0, 0, 1, ' ', 0)
		fmt.Fprintf(tw, "   Name:\t%s\n", orNA(report.Profile.DisplayName))
		fmt.Fprintf(tw, "   Handle:\t%s\n", orNA(report.Profile.Username))
		fmt.Fprintf(tw, "   Bio:\t%s\n", orNA(truncate(report.Profile.Bio, 100)))
		fmt.Fprintf(tw, "   Location:\t%s\n", orNA(report.Profile.DeclaredLocation))
		fmt.Fprintf(tw, "   Technical:\t%s\n", orNA(report.Profile.TechnicalLocation))
		tw.Flush()
	}

	if len(report.RedFlags) > 0 {
		b.WriteString("\nRED FLAGS:\n")
		for i, flag := range report.RedFlags {
			fmt.Fprintf(&b, "   %d. [%s] %s\n", i+1, strings.ToUpper(flag.Severity), flag.Message)
		}
	}

	fmt.Fprintf(&b, "\nRECOMMENDATION: %s\n", report.Recommendation)

	b.WriteString("\nGUIDANCE:\n")
	for _, g := range report.Guidance {
		fmt.Fprintf(&b, "   - %s\n", g)
	}

	if report.Meta.Mode == "EXPERT" {
		b.WriteString("\n" + strings.Repeat("-", 60) + "\n")
		b.WriteString("EXPERT MODE DISCLAIMER:\n")
		b.WriteString(report.Meta.Disclaimer + "\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
	}

	b.WriteString("\n" + reportRule + "\n")
	b.WriteString("End of report - Use responsibly\n")
	b.WriteString(reportRule + "\n")

	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
