package valueobject

import "fmt"

// Recommendation is an immutable value object carrying the discrete action
// derived from an aggregate risk score.
type Recommendation struct {
	value string
}

var (
	RecommendationNoAction = Recommendation{value: "NO_ACTION"}
	RecommendationCaution  = Recommendation{value: "CAUTION"}
	RecommendationAvoid    = Recommendation{value: "AVOID"}
)

// RecommendationFromString reconstructs a Recommendation from its string
// representation.
func RecommendationFromString(s string) (Recommendation, error) {
	switch s {
	case "NO_ACTION":
		return RecommendationNoAction, nil
	case "CAUTION":
		return RecommendationCaution, nil
	case "AVOID":
		return RecommendationAvoid, nil
	default:
		return Recommendation{}, fmt.Errorf("invalid recommendation: %s", s)
	}
}

// RecommendationFromScore derives the Recommendation for a score on the 0-10
// scale. Bands: >=6 AVOID, >=2 CAUTION, else NO_ACTION.
func RecommendationFromScore(score int) Recommendation {
	switch {
	case score >= 6:
		return RecommendationAvoid
	case score >= 2:
		return RecommendationCaution
	default:
		return RecommendationNoAction
	}
}

// String returns the string representation.
func (r Recommendation) String() string {
	return r.value
}

// IsZero returns true if the Recommendation has not been set.
func (r Recommendation) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another Recommendation.
func (r Recommendation) Equal(other Recommendation) bool {
	return r.value == other.value
}
