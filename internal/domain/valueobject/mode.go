package valueobject

import (
	"fmt"
	"strings"
)

// Mode is an immutable value object selecting the disclosure level of an
// analysis report. It controls validation and presentation only; the same
// checks run in every mode.
type Mode struct {
	value string
}

var (
	// ModeDiscovery produces an educational report with anonymized identifiers
	// and coarse-grained findings.
	ModeDiscovery = Mode{value: "DISCOVERY"}

	// ModeInvestigation keeps technical detail but masks the username.
	ModeInvestigation = Mode{value: "INVESTIGATION"}

	// ModeExpert discloses everything and carries the identifying-data disclaimer.
	ModeExpert = Mode{value: "EXPERT"}
)

// UnknownModeError reports a mode value outside the supported set.
type UnknownModeError struct {
	Value string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown analysis mode: %q (expected DISCOVERY, INVESTIGATION or EXPERT)", e.Value)
}

// ModeFromString parses a mode name case-insensitively.
func ModeFromString(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DISCOVERY":
		return ModeDiscovery, nil
	case "INVESTIGATION":
		return ModeInvestigation, nil
	case "EXPERT":
		return ModeExpert, nil
	default:
		return Mode{}, &UnknownModeError{Value: s}
	}
}

// String returns the canonical upper-case name.
func (m Mode) String() string {
	return m.value
}

// IsZero returns true if the Mode has not been set.
func (m Mode) IsZero() bool {
	return m.value == ""
}

// Equal checks equality with another Mode.
func (m Mode) Equal(other Mode) bool {
	return m.value == other.value
}

// Disclaimer returns the disclosure notice attached to every report produced
// in this mode.
func (m Mode) Disclaimer() string {
	if m.Equal(ModeExpert) {
		return "EXPERT MODE - IDENTIFYING DATA VISIBLE\n" +
			"This report contains identifying information.\n" +
			"Public sharing may have legal and ethical consequences.\n" +
			"Use responsibly for documentation purposes only."
	}
	return "Educational analysis - patterns anonymized"
}
