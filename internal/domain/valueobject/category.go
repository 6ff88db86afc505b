package valueobject

import "fmt"

// Category is an immutable value object naming the pattern a finding belongs
// to. The machine tag is stable across releases; the description is the
// coarse-grained wording shown in DISCOVERY-mode reports.
type Category struct {
	value string
}

var (
	CategoryGeoMismatch         = Category{value: "geo_mismatch"}
	CategorySuspiciousGrowth    = Category{value: "suspicious_growth"}
	CategoryIdentityInstability = Category{value: "identity_instability"}
	CategoryTelegramPromotion   = Category{value: "telegram_promotion"}
	CategoryScamBio             = Category{value: "scam_bio"}
	CategoryUnbalancedRatio     = Category{value: "unbalanced_ratio"}
	CategoryCoordinatedNetwork  = Category{value: "coordinated_network"}
	CategoryLikeFishing         = Category{value: "like_fishing"}
	CategoryBioLanguage         = Category{value: "bio_language"}
)

var categoryDescriptions = map[string]string{
	"geo_mismatch":         "Declared and observed locations point to different countries",
	"suspicious_growth":    "Young account with an unusually large follower base",
	"identity_instability": "Frequent username changes",
	"telegram_promotion":   "Bio promotes an off-platform messaging channel",
	"scam_bio":             "Bio matches known scam language patterns",
	"unbalanced_ratio":     "Follow ratio far outside the typical range",
	"coordinated_network":  "Shares channels with other flagged accounts",
	"like_fishing":         "Engagement baiting ahead of direct-message approaches",
	"bio_language":         "Bio language statistically resembles scam copy",
}

// CategoryFromString reconstructs a Category from its machine tag.
func CategoryFromString(s string) (Category, error) {
	if _, ok := categoryDescriptions[s]; !ok {
		return Category{}, fmt.Errorf("invalid finding category: %s", s)
	}
	return Category{value: s}, nil
}

// String returns the machine tag.
func (c Category) String() string {
	return c.value
}

// Description returns the generic pattern description used when a report must
// not echo profile specifics.
func (c Category) Description() string {
	return categoryDescriptions[c.value]
}

// IsZero returns true if the Category has not been set.
func (c Category) IsZero() bool {
	return c.value == ""
}

// Equal checks equality with another Category.
func (c Category) Equal(other Category) bool {
	return c.value == other.value
}
