package domain

import (
	"fmt"
	"slices"
	"time"
)

// StatusPolicy selects which token status codes count as active.
// The two policies disagree on code 4 and are kept apart on purpose.
type StatusPolicy string

// StatusPolicyAggregate is used for roster-wide statistics and reports: codes 1 and 4 are active.
const StatusPolicyAggregate StatusPolicy = "aggregate"

// StatusPolicyDetail is used for the single-badge view and the chat assistant's counts: only code 1 is active.
const StatusPolicyDetail StatusPolicy = "detail"

var ValidStatusPolicies = []StatusPolicy{
	StatusPolicyAggregate,
	StatusPolicyDetail,
}

// ExpiringSoonDays is the inclusive upper bound on days left for a badge to be expiring soon.
const ExpiringSoonDays = 30

// ParseStatusPolicy accepts the policy names and their A/B aliases.
func ParseStatusPolicy(s string) (StatusPolicy, error) {
	switch s {
	case string(StatusPolicyAggregate), "a", "A":
		return StatusPolicyAggregate, nil
	case string(StatusPolicyDetail), "b", "B":
		return StatusPolicyDetail, nil
	default:
		return "", fmt.Errorf("unrecognised status policy [%s]", s)
	}
}

// ActiveCodes lists the token status codes considered active under the policy.
func (p StatusPolicy) ActiveCodes() []int {
	switch p {
	case StatusPolicyAggregate:
		return []int{1, 4}
	case StatusPolicyDetail:
		return []int{1}
	default:
		return nil
	}
}

// BadgeStatus is the derived lifecycle state of a badge at a given instant.
type BadgeStatus struct {
	Policy   StatusPolicy `json:"policy"`
	Active   bool         `json:"active"`
	Inactive bool         `json:"inactive"`
	Expired  bool         `json:"expired"`
	VIP      bool         `json:"vip"`
	DaysLeft *int         `json:"days_left,omitempty"`
}

// ExpiringSoon reports whether the badge has between 0 and ExpiringSoonDays days left, inclusive.
func (s BadgeStatus) ExpiringSoon() bool {
	return s.DaysLeft != nil && IsExpiringSoon(*s.DaysLeft)
}

// ClassifyBadge derives a badge's status under policy at now.
// It is pure: the same inputs always give the same result.
func ClassifyBadge(b Badge, now time.Time, policy StatusPolicy) BadgeStatus {
	now = now.UTC()

	expired := IsExpired(b, now)
	active := slices.Contains(policy.ActiveCodes(), b.TokenStatus) && !expired

	status := BadgeStatus{
		Policy:   policy,
		Active:   active,
		Inactive: !active,
		Expired:  expired,
		VIP:      b.VIP,
	}
	if b.DeactivationDate != nil {
		days := DaysUntil(*b.DeactivationDate, now)
		status.DaysLeft = &days
	}

	return status
}

// IsExpired is true only when the badge has a deactivation date strictly before now.
func IsExpired(b Badge, now time.Time) bool {
	return b.DeactivationDate != nil && b.DeactivationDate.Before(now)
}

// DaysUntil returns the number of whole days from now to t, rounded towards negative infinity,
// so anything in the past counts as at least one day ago.
func DaysUntil(t, now time.Time) int {
	const day = 24 * time.Hour

	d := t.Sub(now)
	days := d / day
	if d < 0 && d%day != 0 {
		days--
	}
	return int(days)
}

func IsExpiringSoon(daysLeft int) bool {
	return daysLeft >= 0 && daysLeft <= ExpiringSoonDays
}
