package valueobject

import "fmt"

// RiskLevel is an immutable value object classifying an aggregate risk score.
type RiskLevel struct {
	value string
}

var (
	RiskLevelMinimal  = RiskLevel{value: "MINIMAL"}
	RiskLevelLow      = RiskLevel{value: "LOW"}
	RiskLevelMedium   = RiskLevel{value: "MEDIUM"}
	RiskLevelHigh     = RiskLevel{value: "HIGH"}
	RiskLevelCritical = RiskLevel{value: "CRITICAL"}
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "MINIMAL":
		return RiskLevelMinimal, nil
	case "LOW":
		return RiskLevelLow, nil
	case "MEDIUM":
		return RiskLevelMedium, nil
	case "HIGH":
		return RiskLevelHigh, nil
	case "CRITICAL":
		return RiskLevelCritical, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromScore derives the RiskLevel for a score on the 0-10 scale.
// Bands: >=8 CRITICAL, >=6 HIGH, >=4 MEDIUM, >=2 LOW, else MINIMAL.
func RiskLevelFromScore(score int) RiskLevel {
	switch {
	case score >= 8:
		return RiskLevelCritical
	case score >= 6:
		return RiskLevelHigh
	case score >= 4:
		return RiskLevelMedium
	case score >= 2:
		return RiskLevelLow
	default:
		return RiskLevelMinimal
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}
