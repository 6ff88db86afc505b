package service

import (
	"regexp"

	"github.com/Equity1137/deep-x-check/internal/domain/model"
	"github.com/Equity1137/deep-x-check/internal/domain/valueobject"
)

var (
	mentionPattern = regexp.MustCompile(`@\w+`)
	channelPattern = regexp.MustCompile(`t\.me/\w+`)
)

// Redactor applies mode-dependent anonymization at presentation time. The
// stored aggregate always keeps the full profile and findings; the redactor
// only shapes what a report is allowed to echo.
type Redactor struct{}

func NewRedactor() *Redactor { return &Redactor{} }

// Profile returns a copy of p with identifying fields redacted for the mode.
// EXPERT passes through untouched.
func (r *Redactor) Profile(p model.Profile, mode valueobject.Mode) model.Profile {
	switch {
	case mode.Equal(valueobject.ModeDiscovery):
		p.Username = "@[REDACTED]"
		if p.DisplayName != "" {
			p.DisplayName = "[ANONYMIZED]"
		}
		// Keep the bio's pattern but strip handles and channel names.
		p.Bio = mentionPattern.ReplaceAllString(p.Bio, "@[USER]")
		p.Bio = channelPattern.ReplaceAllString(p.Bio, "t.me/[CHANNEL]")
	case mode.Equal(valueobject.ModeInvestigation):
		p.Username = partialMask(p.Username)
	}
	return p
}

// Findings returns presentation copies of the findings. DISCOVERY swaps each
// detailed message for the category's generic description; the other modes
// keep full detail.
func (r *Redactor) Findings(findings []model.Finding, mode valueobject.Mode) []model.Finding {
	if !mode.Equal(valueobject.ModeDiscovery) {
		return findings
	}

	redacted := make([]model.Finding, len(findings))
	for i, f := range findings {
		f.Message = f.Category.Description()
		redacted[i] = f
	}
	return redacted
}

// partialMask shows the first and last two runes of a username longer than
// four runes, masking the middle.
func partialMask(username string) string {
	runes := []rune(username)
	if len(runes) <= 4 {
		return username
	}
	return string(runes[:2]) + "***" + string(runes[len(runes)-2:])
}
