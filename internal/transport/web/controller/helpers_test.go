package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jbeshir/badge-desk/internal/datasources"
	"github.com/jbeshir/badge-desk/internal/domain"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func testContext() func(r *http.Request) *http.Request {
	return func(r *http.Request) *http.Request {
		ctx := domain.ContextWithLogger(r.Context(), slog.New(slog.DiscardHandler))
		return r.WithContext(ctx)
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// testRoster has, at testNow:
//   - Jean Dupont: code 1, VIP, expires in 10 days
//   - Marie Curie: code 4, no expiry
//   - Louis Pasteur: code 1, expired yesterday
//   - Victor Hugo: code 2, expires in 3 days
func testRoster() *domain.Roster {
	return domain.NewRoster([]domain.Badge{
		{FirstName: "Jean", LastName: "Dupont", ExternalID: "EXT-001", InternalNumber: "1001",
			TokenStatus: 1, VIP: true, DeactivationDate: timePtr(testNow.AddDate(0, 0, 10))},
		{FirstName: "Marie", LastName: "Curie", ExternalID: "EXT-002", InternalNumber: "1002",
			TokenStatus: 4},
		{FirstName: "Louis", LastName: "Pasteur", ExternalID: "EXT-003", InternalNumber: "1003",
			TokenStatus: 1, DeactivationDate: timePtr(testNow.AddDate(0, 0, -1))},
		{FirstName: "Victor", LastName: "Hugo", InternalNumber: "1004",
			TokenStatus: 2, DeactivationDate: timePtr(testNow.AddDate(0, 0, 3))},
	}, domain.RosterColumns{VIP: true, DeactivationDate: true}, testNow)
}

func testStore(roster *domain.Roster) *datasources.RosterStore {
	store := datasources.NewRosterStore()
	if roster != nil {
		store.ReplaceRoster(roster)
	}
	return store
}

// stubCommand returns a fixed result and records the requests it received.
type stubCommand[Req, Res any] struct {
	res  Res
	err  error
	reqs []Req
}

func (s *stubCommand[Req, Res]) Execute(_ context.Context, req Req) (Res, error) {
	s.reqs = append(s.reqs, req)
	return s.res, s.err
}

type recordingObserver struct {
	stages  []string
	intents []string
}

func (o *recordingObserver) ObserveSearchStage(stage string) {
	o.stages = append(o.stages, stage)
}

func (o *recordingObserver) ObserveChatIntent(intent string) {
	o.intents = append(o.intents, intent)
}
