package command

import (
	"context"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/jbeshir/badge-desk/internal/datasources"
	"github.com/jbeshir/badge-desk/internal/domain"
)

type ComputeRosterStatsRequest struct {
	Now time.Time
}

// RosterStats are roster-wide counts under the aggregate policy.
// Optional counts are nil when the roster lacks the column they depend on.
type RosterStats struct {
	Policy       domain.StatusPolicy `json:"policy"`
	Total        int                 `json:"total"`
	Active       int                 `json:"active"`
	Inactive     int                 `json:"inactive"`
	VIP          *int                `json:"vip"`
	VIPAbsent    bool                `json:"vip_absent"`
	Expired      *int                `json:"expired"`
	ExpiringSoon *int                `json:"expiring_soon"`
	// NotExpiringSoon is every badge that is not expiring soon, including expired and undated ones.
	NotExpiringSoon *int `json:"not_expiring_soon"`

	ByTokenStatus  map[string]int `json:"by_token_status"`
	IssuedPerMonth []MonthCount   `json:"issued_per_month"`
	ByType         map[string]int `json:"by_type,omitempty"`
	LoadedAt       time.Time      `json:"loaded_at"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// ComputeRosterStats summarises the current roster.
type ComputeRosterStats struct {
	Roster datasources.RosterGetter
	Now    func() time.Time
}

func NewComputeRosterStats(roster datasources.RosterGetter) *ComputeRosterStats {
	return &ComputeRosterStats{Roster: roster, Now: time.Now}
}

func (c *ComputeRosterStats) Execute(_ context.Context, req ComputeRosterStatsRequest) (RosterStats, error) {
	roster := c.Roster.Roster()
	if roster == nil {
		return RosterStats{}, datasources.ErrRosterNotLoaded
	}

	now := req.Now
	if now.IsZero() {
		now = c.Now()
	}

	return RosterStatistics(roster, now), nil
}

// RosterStatistics computes RosterStats for roster at now.
func RosterStatistics(roster *domain.Roster, now time.Time) RosterStats {
	stats := RosterStats{
		Policy:        domain.StatusPolicyAggregate,
		Total:         roster.Len(),
		ByTokenStatus: make(map[string]int),
		LoadedAt:      roster.LoadedAt(),
	}

	columns := roster.Columns()
	var vip, expired, expiring int
	issued := make(map[string]int)
	if columns.Type {
		stats.ByType = make(map[string]int)
	}

	for i := 0; i < roster.Len(); i++ {
		b := roster.At(i)
		status := domain.ClassifyBadge(b, now, domain.StatusPolicyAggregate)

		if status.Active {
			stats.Active++
		} else {
			stats.Inactive++
		}
		if status.VIP {
			vip++
		}
		if status.Expired {
			expired++
		}
		if status.ExpiringSoon() {
			expiring++
		}

		stats.ByTokenStatus[strconv.Itoa(b.TokenStatus)]++
		if b.IssueDate != nil {
			issued[b.IssueDate.UTC().Format("2006-01")]++
		}
		if columns.Type && b.Type != "" {
			stats.ByType[b.Type]++
		}
	}

	if columns.VIP {
		stats.VIP = &vip
	} else {
		stats.VIPAbsent = true
	}
	if columns.DeactivationDate {
		notExpiring := stats.Total - expiring
		stats.Expired = &expired
		stats.ExpiringSoon = &expiring
		stats.NotExpiringSoon = &notExpiring
	}

	for _, month := range slices.Sorted(maps.Keys(issued)) {
		stats.IssuedPerMonth = append(stats.IssuedPerMonth, MonthCount{Month: month, Count: issued[month]})
	}

	return stats
}
