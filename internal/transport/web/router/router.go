package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jbeshir/badge-desk/internal/command"
	"github.com/jbeshir/badge-desk/internal/datasources"
	"github.com/jbeshir/badge-desk/internal/domain"
	"github.com/jbeshir/badge-desk/internal/metrics"
	"github.com/jbeshir/badge-desk/internal/transport/web/controller"
)

type Commands struct {
	Search  command.Command[command.SearchBadgesRequest, command.SearchBadgesResponse]
	Detail  command.Command[command.GetBadgeDetailRequest, domain.BadgeDetail]
	Respond command.Command[command.RespondToMessageRequest, command.RespondToMessageResponse]
	Stats   command.Command[command.ComputeRosterStatsRequest, command.RosterStats]
	Reload  command.Command[command.ReloadRosterRequest, command.ReloadRosterResponse]
}

type FeedConfig struct {
	BaseURL     string
	AuthorName  string
	AuthorEmail string
}

func MakeRouter(
	roster datasources.RosterGetter,
	commands Commands,
	feed FeedConfig,
	defaultPolicy domain.StatusPolicy,
	cacheMaxAge time.Duration,
	m *metrics.Metrics,
) (http.Handler, error) {
	r := mux.NewRouter()
	r.Use(requestContextMiddleware)
	r.Use(corsMiddleware)
	r.Use(observeMiddleware(m))

	r.Handle("/v1/badges", controller.BadgesSearch{
		Searcher:    commands.Search,
		Observer:    m,
		CacheMaxAge: cacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/badges/{badge_id}", controller.BadgeGet{
		Getter:        commands.Detail,
		DefaultPolicy: defaultPolicy,
		CacheMaxAge:   cacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/chat", controller.Chat{
		Responder: commands.Respond,
		Observer:  m,
	}).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/chat/suggestions", controller.ChatSuggestions{}).
		Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/stats", controller.Stats{
		Computer:    commands.Stats,
		CacheMaxAge: cacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/roster/reload", controller.RosterReload{
		Reloader: commands.Reload,
	}).Methods(http.MethodPost, http.MethodOptions)

	rssFeeds := []controller.ExpiringFeed{
		{
			FeedHostname:    feed.BaseURL,
			FeedPath:        "/rss/expiring",
			FeedAuthorName:  feed.AuthorName,
			FeedAuthorEmail: feed.AuthorEmail,
			Roster:          roster,
			Now:             time.Now,
			CacheMaxAge:     cacheMaxAge,
		},
	}

	for _, f := range rssFeeds {
		r.Handle(f.FeedPath, f).Methods(http.MethodGet)
	}

	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	return r, nil
}
