package service

import "github.com/Equity1137/deep-x-check/internal/domain/valueobject"

// Guidance derives the advisory strings for a finished analysis from its
// score and finding categories. Deterministic: identical inputs yield
// identical advice, in a fixed order.
func Guidance(score int, categories []string) []string {
	advice := make([]string, 0, 4)

	if score >= 6 {
		advice = append(advice, "Avoid any financial interaction with this account")
		advice = append(advice, "Report if promoting scams or manipulation")
	}

	has := make(map[string]bool, len(categories))
	for _, c := range categories {
		has[c] = true
	}

	if has[valueobject.CategoryGeoMismatch.String()] {
		advice = append(advice, "Verify geographical claims before trust")
	}
	if has[valueobject.CategoryTelegramPromotion.String()] {
		advice = append(advice, "Be cautious of Telegram groups promising quick gains")
	}
	if has[valueobject.CategoryLikeFishing.String()] {
		advice = append(advice, "Likes can be bait - check profile before engaging")
	}

	if len(advice) == 0 {
		advice = append(advice, "Profile appears normal - maintain standard vigilance")
	}

	return advice
}
