package command

import (
	"context"
	"fmt"
	"time"

	"github.com/jbeshir/badge-desk/internal/datasources"
	"github.com/jbeshir/badge-desk/internal/domain"
)

type ReloadRosterRequest struct{}

type ReloadRosterResponse struct {
	Badges   int       `json:"badges"`
	LoadedAt time.Time `json:"loaded_at"`
}

// RosterObserver is told about every reload attempt.
type RosterObserver interface {
	ObserveRosterReload(roster *domain.Roster, err error)
}

// ReloadRoster reads a fresh roster from its source and swaps it in.
// On failure the previous roster stays in place.
type ReloadRoster struct {
	Loader   datasources.RosterLoader
	Replacer datasources.RosterReplacer
	Observer RosterObserver
}

func NewReloadRoster(
	loader datasources.RosterLoader,
	replacer datasources.RosterReplacer,
	observer RosterObserver,
) *ReloadRoster {
	return &ReloadRoster{
		Loader:   loader,
		Replacer: replacer,
		Observer: observer,
	}
}

func (c *ReloadRoster) Execute(ctx context.Context, _ ReloadRosterRequest) (ReloadRosterResponse, error) {
	logger := domain.LoggerFromContext(ctx)

	roster, err := c.Loader.LoadRoster(ctx)
	if c.Observer != nil {
		c.Observer.ObserveRosterReload(roster, err)
	}
	if err != nil {
		return ReloadRosterResponse{}, fmt.Errorf("loading roster: %w", err)
	}

	c.Replacer.ReplaceRoster(roster)

	logger.InfoContext(ctx, "roster reloaded",
		"badges", roster.Len(),
		"vip_column", roster.Columns().VIP,
		"deactivation_column", roster.Columns().DeactivationDate,
	)

	return ReloadRosterResponse{
		Badges:   roster.Len(),
		LoadedAt: roster.LoadedAt(),
	}, nil
}
