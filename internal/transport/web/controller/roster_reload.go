package controller

import (
	"encoding/json"
	"net/http"

	"github.com/jbeshir/badge-desk/internal/command"
	"github.com/jbeshir/badge-desk/internal/domain"
)

type RosterReload struct {
	Reloader command.Command[command.ReloadRosterRequest, command.ReloadRosterResponse]
}

func (c RosterReload) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	res, err := c.Reloader.Execute(ctx, command.ReloadRosterRequest{})
	if err != nil {
		logger.ErrorContext(ctx, "unable to reload roster", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		logger.ErrorContext(ctx, "unable to write reload result to response", "error", err)
	}
}
