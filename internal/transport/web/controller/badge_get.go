package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jbeshir/badge-desk/internal/command"
	"github.com/jbeshir/badge-desk/internal/datasources"
	"github.com/jbeshir/badge-desk/internal/domain"
)

type BadgeGet struct {
	Getter        command.Command[command.GetBadgeDetailRequest, domain.BadgeDetail]
	DefaultPolicy domain.StatusPolicy
	CacheMaxAge   time.Duration
}

type BadgeGetResponse struct {
	Data domain.BadgeDetail `json:"data"`
	// Formatted is the aligned plain-text rendering of Data.
	Formatted string `json:"formatted"`
}

func (c BadgeGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["badge_id"]
	logger := domain.LoggerFromContext(r.Context())
	ctx := domain.ContextWithLogger(r.Context(), logger.With("badge_id", id))

	policy := c.DefaultPolicy
	if q := r.URL.Query(); q.Has("policy") {
		p, err := domain.ParseStatusPolicy(q.Get("policy"))
		if err != nil {
			logger.ErrorContext(ctx, "unable to parse status policy", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		policy = p
	}

	detail, err := c.Getter.Execute(ctx, command.GetBadgeDetailRequest{ID: id, Policy: policy})
	switch {
	case errors.Is(err, command.ErrBadgeNotFound):
		w.WriteHeader(http.StatusNotFound)
		return
	case errors.Is(err, datasources.ErrRosterNotLoaded):
		logger.ErrorContext(ctx, "badge requested before roster was loaded")
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	case err != nil:
		logger.ErrorContext(ctx, "unable to fetch badge", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if err := json.NewEncoder(w).Encode(BadgeGetResponse{
		Data:      detail,
		Formatted: domain.FormatDetail(detail),
	}); err != nil {
		logger.ErrorContext(ctx, "unable to write badge to response", "error", err)
	}
}
