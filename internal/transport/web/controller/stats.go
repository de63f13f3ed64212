package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jbeshir/badge-desk/internal/command"
	"github.com/jbeshir/badge-desk/internal/datasources"
	"github.com/jbeshir/badge-desk/internal/domain"
)

type Stats struct {
	Computer    command.Command[command.ComputeRosterStatsRequest, command.RosterStats]
	CacheMaxAge time.Duration
}

func (c Stats) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	stats, err := c.Computer.Execute(ctx, command.ComputeRosterStatsRequest{})
	if errors.Is(err, datasources.ErrRosterNotLoaded) {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "unable to compute roster statistics", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if err := json.NewEncoder(w).Encode(stats); err != nil {
		logger.ErrorContext(ctx, "unable to write statistics to response", "error", err)
	}
}
