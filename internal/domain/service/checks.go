package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Equity1137/deep-x-check/internal/domain/model"
	"github.com/Equity1137/deep-x-check/internal/domain/valueobject"
)

// Check evaluates one risk pattern against a profile. Checks are pure: no
// I/O, no profile mutation. Most return zero or one finding.
type Check interface {
	Name() string
	Evaluate(p model.Profile) []model.Finding
}

// GeoMismatchCheck flags profiles whose declared and technical locations
// resolve to different countries.
type GeoMismatchCheck struct {
	indicators []GeoIndicator
}

func NewGeoMismatchCheck(indicators []GeoIndicator) *GeoMismatchCheck {
	return &GeoMismatchCheck{indicators: indicators}
}

func (c *GeoMismatchCheck) Name() string { return "geo_mismatch" }

func (c *GeoMismatchCheck) Evaluate(p model.Profile) []model.Finding {
	declared := strings.ToLower(p.DeclaredLocation)
	technical := strings.ToLower(p.TechnicalLocation)
	if declared == "" || technical == "" {
		return nil
	}

	declaredCountry := c.resolve(declared)
	technicalCountry := c.resolve(technical)
	if declaredCountry == "" || technicalCountry == "" || declaredCountry == technicalCountry {
		return nil
	}

	return []model.Finding{{
		Category: valueobject.CategoryGeoMismatch,
		Severity: valueobject.SeverityHigh,
		Weight:   3,
		Message:  fmt.Sprintf("Declared location: %s, Technical location: %s", p.DeclaredLocation, p.TechnicalLocation),
	}}
}

var locationTokenPattern = regexp.MustCompile(`[a-z]+`)

// resolve returns the country label of the first indicator list that matches,
// or "" when no list matches. Single-word indicators must match a whole token
// of the location, so state codes like "pa" or "tn" never fire inside words
// such as "paris". Multi-word indicators match as substrings.
func (c *GeoMismatchCheck) resolve(location string) string {
	tokens := locationTokenPattern.FindAllString(location, -1)
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = struct{}{}
	}

	for _, geo := range c.indicators {
		for _, indicator := range geo.Indicators {
			if strings.ContainsRune(indicator, ' ') {
				if strings.Contains(location, indicator) {
					return geo.Country
				}
				continue
			}
			if _, ok := tokenSet[indicator]; ok {
				return geo.Country
			}
		}
	}
	return ""
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// SuspiciousGrowthCheck flags young accounts with large follower bases. The
// account counts as recent when its join date falls in the current or the
// previous calendar year.
type SuspiciousGrowthCheck struct {
	now          func() time.Time
	minFollowers int
}

func NewSuspiciousGrowthCheck(minFollowers int, now func() time.Time) *SuspiciousGrowthCheck {
	if now == nil {
		now = time.Now
	}
	return &SuspiciousGrowthCheck{minFollowers: minFollowers, now: now}
}

func (c *SuspiciousGrowthCheck) Name() string { return "suspicious_growth" }

func (c *SuspiciousGrowthCheck) Evaluate(p model.Profile) []model.Finding {
	match := yearPattern.FindString(p.JoinDate)
	if match == "" {
		return nil
	}
	joinYear, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}

	if joinYear < c.now().Year()-1 || p.Followers <= c.minFollowers {
		return nil
	}

	return []model.Finding{{
		Category: valueobject.CategorySuspiciousGrowth,
		Severity: valueobject.SeverityMedium,
		Weight:   2,
		Message:  fmt.Sprintf("Recent account (%s) with %d followers", p.JoinDate, p.Followers),
	}}
}

// IdentityInstabilityCheck flags profiles with frequent username changes.
type IdentityInstabilityCheck struct {
	minChanges int
}

func NewIdentityInstabilityCheck(minChanges int) *IdentityInstabilityCheck {
	return &IdentityInstabilityCheck{minChanges: minChanges}
}

func (c *IdentityInstabilityCheck) Name() string { return "identity_instability" }

func (c *IdentityInstabilityCheck) Evaluate(p model.Profile) []model.Finding {
	if p.NameChanges < c.minChanges {
		return nil
	}

	return []model.Finding{{
		Category: valueobject.CategoryIdentityInstability,
		Severity: valueobject.SeverityMedium,
		Weight:   2,
		Message:  fmt.Sprintf("%d username changes, last: %s", p.NameChanges, p.LastNameChange),
	}}
}

// TelegramPromotionCheck flags bios that promote Telegram channels or links.
type TelegramPromotionCheck struct {
	patterns []string
}

func NewTelegramPromotionCheck(patterns []string) *TelegramPromotionCheck {
	return &TelegramPromotionCheck{patterns: patterns}
}

func (c *TelegramPromotionCheck) Name() string { return "telegram_promotion" }

func (c *TelegramPromotionCheck) Evaluate(p model.Profile) []model.Finding {
	bio := strings.ToLower(p.Bio)
	for _, pattern := range c.patterns {
		if strings.Contains(bio, pattern) {
			return []model.Finding{{
				Category: valueobject.CategoryTelegramPromotion,
				Severity: valueobject.SeverityMedium,
				Weight:   2,
				Message:  "Telegram link found in bio (common for coordinated groups)",
			}}
		}
	}
	return nil
}

// ScamBioCheck flags bios containing configured scam keywords. The weight
// escalates when the keyword count reaches the escalation threshold.
type ScamBioCheck struct {
	keywords   []string
	escalation int
}

func NewScamBioCheck(keywords []string, escalation int) *ScamBioCheck {
	return &ScamBioCheck{keywords: keywords, escalation: escalation}
}

func (c *ScamBioCheck) Name() string { return "scam_bio" }

func (c *ScamBioCheck) Evaluate(p model.Profile) []model.Finding {
	bio := strings.ToLower(p.Bio)

	found := make([]string, 0)
	for _, keyword := range c.keywords {
		if strings.Contains(bio, keyword) {
			found = append(found, keyword)
		}
	}
	if len(found) == 0 {
		return nil
	}

	weight := 1
	if len(found) >= c.escalation {
		weight = 2
	}

	return []model.Finding{{
		Category: valueobject.CategoryScamBio,
		Severity: valueobject.SeverityMedium,
		Weight:   weight,
		Message:  "Bio contains suspicious keywords: " + strings.Join(found, ", "),
	}}
}

// UnbalancedRatioCheck flags profiles following far more accounts than follow
// them back.
type UnbalancedRatioCheck struct {
	threshold decimal.Decimal
}

func NewUnbalancedRatioCheck(threshold decimal.Decimal) *UnbalancedRatioCheck {
	return &UnbalancedRatioCheck{threshold: threshold}
}

func (c *UnbalancedRatioCheck) Name() string { return "unbalanced_ratio" }

func (c *UnbalancedRatioCheck) Evaluate(p model.Profile) []model.Finding {
	if p.Followers <= 0 {
		return nil
	}

	ratio := decimal.NewFromInt(int64(p.Following)).Div(decimal.NewFromInt(int64(p.Followers)))
	if !ratio.GreaterThan(c.threshold) {
		return nil
	}

	return []model.Finding{{
		Category: valueobject.CategoryUnbalancedRatio,
		Severity: valueobject.SeverityLow,
		Weight:   1,
		Message:  fmt.Sprintf("Following %d but only %d followers (ratio: %s)", p.Following, p.Followers, ratio.StringFixed(1)),
	}}
}

// CoordinatedNetworkCheck flags profiles sharing channels with other flagged
// accounts.
type CoordinatedNetworkCheck struct {
	minChannels int
}

func NewCoordinatedNetworkCheck(minChannels int) *CoordinatedNetworkCheck {
	return &CoordinatedNetworkCheck{minChannels: minChannels}
}

func (c *CoordinatedNetworkCheck) Name() string { return "coordinated_network" }

func (c *CoordinatedNetworkCheck) Evaluate(p model.Profile) []model.Finding {
	if len(p.SharedChannels) < c.minChannels {
		return nil
	}

	return []model.Finding{{
		Category: valueobject.CategoryCoordinatedNetwork,
		Severity: valueobject.SeverityHigh,
		Weight:   3,
		Message:  fmt.Sprintf("Shares %d channels with other suspicious accounts", len(p.SharedChannels)),
	}}
}

// LikeFishingCheck flags profiles observed using likes as engagement bait.
type LikeFishingCheck struct{}

func NewLikeFishingCheck() *LikeFishingCheck { return &LikeFishingCheck{} }

func (c *LikeFishingCheck) Name() string { return "like_fishing" }

func (c *LikeFishingCheck) Evaluate(p model.Profile) []model.Finding {
	if !p.LikeFishing {
		return nil
	}

	return []model.Finding{{
		Category: valueobject.CategoryLikeFishing,
		Severity: valueobject.SeverityMedium,
		Weight:   2,
		Message:  "Uses likes to attract attention before DM scams",
	}}
}
