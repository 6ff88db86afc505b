package model

import (
	"fmt"
	"strings"
)

// InvalidInputError reports a profile field that failed validation.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Profile is the input record for a single analysis. It is treated as
// immutable: checks and scorers read it, nothing mutates it.
type Profile struct {
	Username          string
	DisplayName       string
	Bio               string
	DeclaredLocation  string
	TechnicalLocation string
	JoinDate          string
	LastNameChange    string
	SharedChannels    []string
	Followers         int
	Following         int
	NameChanges       int
	LikeFishing       bool
}

// Validate checks the mode-independent field constraints.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Username) == "" {
		return &InvalidInputError{Field: "username", Reason: "is required"}
	}
	if p.Followers < 0 {
		return &InvalidInputError{Field: "followers", Reason: "must be non-negative"}
	}
	if p.Following < 0 {
		return &InvalidInputError{Field: "following", Reason: "must be non-negative"}
	}
	if p.NameChanges < 0 {
		return &InvalidInputError{Field: "name_changes", Reason: "must be non-negative"}
	}
	return nil
}
