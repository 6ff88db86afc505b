package model

import "github.com/Equity1137/deep-x-check/internal/domain/valueobject"

// Finding is one triggered risk pattern. Weight is the finding's score
// contribution; Message is the full human-readable detail (redaction happens
// at presentation time, never here).
type Finding struct {
	Category valueobject.Category
	Severity valueobject.Severity
	Message  string
	Weight   int
}
