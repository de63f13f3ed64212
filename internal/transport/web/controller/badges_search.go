package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jbeshir/badge-desk/internal/command"
	"github.com/jbeshir/badge-desk/internal/domain"
)

type SearchStageObserver interface {
	ObserveSearchStage(stage string)
}

type BadgesSearch struct {
	Searcher    command.Command[command.SearchBadgesRequest, command.SearchBadgesResponse]
	Observer    SearchStageObserver
	CacheMaxAge time.Duration
}

type BadgesSearchResponse struct {
	Data     []domain.Badge       `json:"data"`
	Metadata BadgesSearchMetadata `json:"metadata"`
}

type BadgesSearchMetadata struct {
	Total       int                 `json:"total"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	Stage       command.SearchStage `json:"stage"`
	Suggestions []string            `json:"suggestions"`
}

func (c BadgesSearch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	page, pageSize, err := parsePagination(r.URL.Query())
	if err != nil {
		logger.ErrorContext(ctx, "unable to parse pagination in query string", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	res, err := c.Searcher.Execute(ctx, command.SearchBadgesRequest{Query: r.URL.Query().Get("q")})
	if err != nil {
		logger.ErrorContext(ctx, "unable to search badges", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if c.Observer != nil {
		c.Observer.ObserveSearchStage(string(res.Stage))
	}

	suggestions := res.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if err := json.NewEncoder(w).Encode(BadgesSearchResponse{
		Data: paginate(res.Matches, page, pageSize),
		Metadata: BadgesSearchMetadata{
			Total:       len(res.Matches),
			Page:        page,
			PageSize:    pageSize,
			Stage:       res.Stage,
			Suggestions: suggestions,
		},
	}); err != nil {
		logger.ErrorContext(ctx, "unable to write badges to response", "error", err)
	}
}
