package valueobject

import "fmt"

// Severity is an immutable value object grading how strongly a single finding
// indicates manipulation.
type Severity struct {
	value string
}

var (
	SeverityLow    = Severity{value: "LOW"}
	SeverityMedium = Severity{value: "MEDIUM"}
	SeverityHigh   = Severity{value: "HIGH"}
)

// SeverityFromString reconstructs a Severity from its string representation.
func SeverityFromString(s string) (Severity, error) {
	switch s {
	case "LOW":
		return SeverityLow, nil
	case "MEDIUM":
		return SeverityMedium, nil
	case "HIGH":
		return SeverityHigh, nil
	default:
		return Severity{}, fmt.Errorf("invalid severity: %s", s)
	}
}

// String returns the string representation.
func (s Severity) String() string {
	return s.value
}

// IsZero returns true if the Severity has not been set.
func (s Severity) IsZero() bool {
	return s.value == ""
}

// Equal checks equality with another Severity.
func (s Severity) Equal(other Severity) bool {
	return s.value == other.value
}
