package service

import "github.com/shopspring/decimal"

// GeoIndicator maps a country label to the location indicators that resolve
// to it. Matching is case-insensitive; single-word indicators match whole
// tokens, multi-word indicators match as substrings. The first entry whose
// indicators match wins, so keep the list ordered from most to least specific.
type GeoIndicator struct {
	Country    string
	Indicators []string
}

// RuleConfig carries the tunables of the rule-based checks. Finding weights
// are fixed per check; the config controls what triggers them.
type RuleConfig struct {
	GeoIndicators         []GeoIndicator
	TelegramPatterns      []string
	ScamKeywords          []string
	RatioThreshold        decimal.Decimal
	RecentFollowersMin    int
	NameChangesMin        int
	SharedChannelsMin     int
	ScamKeywordEscalation int
	MaxScore              int
}

// DefaultRuleConfig returns the built-in rule set. A YAML rules file can
// override any of these values.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		GeoIndicators: []GeoIndicator{
			{
				Country: "united_states",
				Indicators: []string{
					"usa", "united states", "new york", "california", "texas",
					"pennsylvania", "memphis", "boston", "ma", "pa", "tn",
				},
			},
			{
				Country:    "nigeria",
				Indicators: []string{"nigeria", "ng", "lagos", "abuja", "ikeja"},
			},
		},
		TelegramPatterns: []string{"t.me/", "telegram", "tg://", "joinchat/"},
		ScamKeywords: []string{
			"blessed", "blessing", "cashapp", "paypal", "apple pay",
			"send me", "dm me", "instant money", "get paid",
			"nfa", "not financial advice", "alpha", "signal",
			"pump", "moon", "100x", "financial freedom",
		},
		RatioThreshold:        decimal.NewFromInt(10),
		RecentFollowersMin:    1000,
		NameChangesMin:        3,
		SharedChannelsMin:     2,
		ScamKeywordEscalation: 3,
		MaxScore:              10,
	}
}
