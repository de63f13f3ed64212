package command

import (
	"context"
	"log/slog"
	"time"

	"github.com/jbeshir/badge-desk/internal/datasources"
	"github.com/jbeshir/badge-desk/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testContext() context.Context {
	return domain.ContextWithLogger(context.Background(), testLogger())
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func storeWith(roster *domain.Roster) *datasources.RosterStore {
	store := datasources.NewRosterStore()
	store.ReplaceRoster(roster)
	return store
}

// largeRoster returns a roster of more than SuggestionMinRosterSize badges, with extra appended.
func largeRoster(extra ...domain.Badge) *domain.Roster {
	badges := []domain.Badge{
		{FirstName: "Jean", LastName: "Dupont", ExternalID: "EXT-001", InternalNumber: "1001", TokenStatus: 1},
		{FirstName: "Marie", LastName: "Curie", ExternalID: "EXT-002", InternalNumber: "1002", TokenStatus: 1},
		{FirstName: "Louis", LastName: "Pasteur", ExternalID: "EXT-003", InternalNumber: "1003", TokenStatus: 4},
		{FirstName: "Victor", LastName: "Hugo", ExternalID: "EXT-004", InternalNumber: "1004", TokenStatus: 2},
		{FirstName: "Émile", LastName: "Zola", ExternalID: "EXT-005", InternalNumber: "1005", TokenStatus: 1},
		{FirstName: "Claude", LastName: "Monet", ExternalID: "EXT-006", InternalNumber: "1006", TokenStatus: 1},
		{FirstName: "Simone", LastName: "Veil", ExternalID: "EXT-007", InternalNumber: "1007", TokenStatus: 1},
		{FirstName: "Albert", LastName: "Camus", ExternalID: "EXT-008", InternalNumber: "1008", TokenStatus: 3},
		{FirstName: "Edith", LastName: "Piaf", ExternalID: "EXT-009", InternalNumber: "1009", TokenStatus: 1},
		{FirstName: "Gustave", LastName: "Eiffel", ExternalID: "EXT-010", InternalNumber: "1010", TokenStatus: 1},
		{FirstName: "Coco", LastName: "Chanel", ExternalID: "EXT-011", InternalNumber: "1011", TokenStatus: 1},
	}
	badges = append(badges, extra...)
	return domain.NewRoster(badges, domain.RosterColumns{}, time.Now())
}
