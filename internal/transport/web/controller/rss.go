package controller

import (
	"cmp"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/gorilla/feeds"
	"github.com/jbeshir/badge-desk/internal/datasources"
	"github.com/jbeshir/badge-desk/internal/domain"
)

// ExpiringFeed publishes the badges expiring within domain.ExpiringSoonDays as RSS.
type ExpiringFeed struct {
	FeedHostname    string
	FeedPath        string
	FeedAuthorName  string
	FeedAuthorEmail string
	Roster          datasources.RosterGetter
	Now             func() time.Time
	CacheMaxAge     time.Duration
}

func (c ExpiringFeed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	roster := c.Roster.Roster()
	if roster == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}

	feed := &feeds.Feed{
		Title:       "Badges expirant bientôt",
		Link:        &feeds.Link{Href: c.FeedHostname + c.FeedPath},
		Description: fmt.Sprintf("Badges expirant dans les %d prochains jours", domain.ExpiringSoonDays),
		Author:      &feeds.Author{Name: c.FeedAuthorName, Email: c.FeedAuthorEmail},
		Created:     now,
		Updated:     roster.LoadedAt(),
	}

	for _, b := range expiringBadges(roster, now) {
		status := domain.ClassifyBadge(b, now, domain.StatusPolicyDetail)
		id := badgeFeedID(b)

		feed.Items = append(feed.Items, &feeds.Item{
			Id:          id,
			IsPermaLink: "false",
			Title: fmt.Sprintf("%s expire le %s",
				b.DisplayName(), domain.FormatDate(*b.DeactivationDate)),
			Link:        &feeds.Link{Href: c.FeedHostname + "/v1/badges/" + url.PathEscape(id)},
			Description: fmt.Sprintf("%d jours restants", *status.DaysLeft),
			Created:     roster.LoadedAt(),
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		logger.ErrorContext(ctx, "unable to format feed as RSS", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if _, err := w.Write([]byte(rss)); err != nil {
		logger.ErrorContext(ctx, "unable to write feed to response", "error", err)
	}
}

// expiringBadges returns the expiring-soon badges, soonest first.
func expiringBadges(roster *domain.Roster, now time.Time) []domain.Badge {
	var out []domain.Badge
	for _, b := range roster.Badges() {
		if domain.ClassifyBadge(b, now, domain.StatusPolicyDetail).ExpiringSoon() {
			out = append(out, b)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Badge) int {
		return cmp.Compare(a.DeactivationDate.Unix(), b.DeactivationDate.Unix())
	})
	return out
}

func badgeFeedID(b domain.Badge) string {
	if b.ExternalID != "" {
		return b.ExternalID
	}
	if b.InternalNumber != "" {
		return b.InternalNumber
	}
	return b.DisplayName()
}
