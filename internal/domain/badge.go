package domain

import (
	"strings"
	"time"
)

// Badge is one access-credential holder's record as loaded from the roster source.
// Optional text fields are empty when missing; optional dates are nil when missing or unparseable.
type Badge struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ExternalID     string `json:"external_id"`
	InternalNumber string `json:"internal_number"`

	// TokenStatus is the raw status code; 0 when the source had no value.
	TokenStatus int `json:"token_status"`

	IssueDate        *time.Time `json:"issue_date,omitempty"`
	ActivationDate   *time.Time `json:"activation_date,omitempty"`
	DeactivationDate *time.Time `json:"deactivation_date,omitempty"`

	VIP bool `json:"vip"`

	Address    string `json:"address,omitempty"`
	Roles      string `json:"roles,omitempty"`
	IssueLevel string `json:"issue_level,omitempty"`
	Type       string `json:"type,omitempty"`
}

// FullName joins the trimmed first and last names with a single space.
// The second return value is false when either part is missing, in which case
// the badge has no full name.
func (b Badge) FullName() (string, bool) {
	first := strings.TrimSpace(b.FirstName)
	last := strings.TrimSpace(b.LastName)
	if first == "" || last == "" {
		return "", false
	}
	return first + " " + last, true
}

// DisplayName is the name used in listings: first and last name joined and trimmed,
// tolerating either part being missing.
func (b Badge) DisplayName() string {
	return strings.TrimSpace(b.FirstName + " " + b.LastName)
}

// HasIdentifier reports whether id equals the badge's external ID or internal number,
// ignoring case and surrounding whitespace.
func (b Badge) HasIdentifier(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	return strings.EqualFold(b.ExternalID, id) || strings.EqualFold(b.InternalNumber, id)
}
