package command

import (
	"context"
	"time"

	"github.com/jbeshir/badge-desk/internal/domain"
)

// RunRosterReload reloads the roster on a fixed interval until its context is cancelled.
// Failed reloads are logged and retried on the next tick.
type RunRosterReload struct {
	Reload   Command[ReloadRosterRequest, ReloadRosterResponse]
	Interval time.Duration
}

func (c *RunRosterReload) Run(ctx context.Context) error {
	logger := domain.LoggerFromContext(ctx)

	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := c.Reload.Execute(ctx, ReloadRosterRequest{}); err != nil {
				logger.ErrorContext(ctx, "periodic roster reload failed", "error", err)
			}
		}
	}
}
