package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jbeshir/badge-desk/internal/datasources"
	"github.com/jbeshir/badge-desk/internal/domain"
)

// ErrBadgeNotFound is returned when no badge has the requested identifier.
var ErrBadgeNotFound = errors.New("badge not found")

type GetBadgeDetailRequest struct {
	// ID is matched against external IDs and internal numbers.
	ID string
	// Policy defaults to the detail policy.
	Policy domain.StatusPolicy
	Now    time.Time
}

// GetBadgeDetail looks up a single badge and classifies it.
type GetBadgeDetail struct {
	Roster datasources.RosterGetter
	Now    func() time.Time
}

func NewGetBadgeDetail(roster datasources.RosterGetter) *GetBadgeDetail {
	return &GetBadgeDetail{Roster: roster, Now: time.Now}
}

func (c *GetBadgeDetail) Execute(_ context.Context, req GetBadgeDetailRequest) (domain.BadgeDetail, error) {
	roster := c.Roster.Roster()
	if roster == nil {
		return domain.BadgeDetail{}, datasources.ErrRosterNotLoaded
	}

	badge, ok := roster.FindByIdentifier(req.ID)
	if !ok {
		return domain.BadgeDetail{}, fmt.Errorf("%w: %s", ErrBadgeNotFound, req.ID)
	}

	policy := req.Policy
	if policy == "" {
		policy = domain.StatusPolicyDetail
	}
	now := req.Now
	if now.IsZero() {
		now = c.Now()
	}

	return domain.NewBadgeDetail(badge, now, policy), nil
}
