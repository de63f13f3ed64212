package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestClassifyBadge(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name         string
		badge        Badge
		policy       StatusPolicy
		wantActive   bool
		wantExpired  bool
		wantDaysLeft *int
	}{
		{
			name:       "status_1_no_expiry_aggregate",
			badge:      Badge{TokenStatus: 1},
			policy:     StatusPolicyAggregate,
			wantActive: true,
		},
		{
			name:       "status_1_no_expiry_detail",
			badge:      Badge{TokenStatus: 1},
			policy:     StatusPolicyDetail,
			wantActive: true,
		},
		{
			name:       "status_4_no_expiry_aggregate_is_active",
			badge:      Badge{TokenStatus: 4},
			policy:     StatusPolicyAggregate,
			wantActive: true,
		},
		{
			name:       "status_4_no_expiry_detail_is_inactive",
			badge:      Badge{TokenStatus: 4},
			policy:     StatusPolicyDetail,
			wantActive: false,
		},
		{
			name:       "status_2_is_inactive",
			badge:      Badge{TokenStatus: 2},
			policy:     StatusPolicyAggregate,
			wantActive: false,
		},
		{
			name:       "missing_status_is_inactive",
			badge:      Badge{},
			policy:     StatusPolicyAggregate,
			wantActive: false,
		},
		{
			name:         "expired_yesterday_is_not_active",
			badge:        Badge{TokenStatus: 1, DeactivationDate: timePtr(now.AddDate(0, 0, -1))},
			policy:       StatusPolicyAggregate,
			wantActive:   false,
			wantExpired:  true,
			wantDaysLeft: intPtr(-1),
		},
		{
			name:         "expired_one_second_ago_is_minus_one_day",
			badge:        Badge{TokenStatus: 1, DeactivationDate: timePtr(now.Add(-time.Second))},
			policy:       StatusPolicyDetail,
			wantActive:   false,
			wantExpired:  true,
			wantDaysLeft: intPtr(-1),
		},
		{
			name:         "deactivation_later_today_is_zero_days_left",
			badge:        Badge{TokenStatus: 1, DeactivationDate: timePtr(now.Add(time.Hour))},
			policy:       StatusPolicyDetail,
			wantActive:   true,
			wantDaysLeft: intPtr(0),
		},
		{
			name:         "deactivation_in_ten_days",
			badge:        Badge{TokenStatus: 4, DeactivationDate: timePtr(now.AddDate(0, 0, 10))},
			policy:       StatusPolicyAggregate,
			wantActive:   true,
			wantDaysLeft: intPtr(10),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status := ClassifyBadge(tc.badge, now, tc.policy)

			assert.Equal(t, tc.policy, status.Policy)
			assert.Equal(t, tc.wantActive, status.Active)
			assert.Equal(t, !tc.wantActive, status.Inactive)
			assert.Equal(t, tc.wantExpired, status.Expired)
			assert.Equal(t, tc.wantDaysLeft, status.DaysLeft)
		})
	}
}

func intPtr(i int) *int {
	return &i
}

func TestClassifyBadge_ExpiredImpliesNotActive(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	for _, policy := range ValidStatusPolicies {
		for code := 0; code <= 5; code++ {
			for _, offset := range []time.Duration{-48 * time.Hour, -time.Nanosecond, time.Hour, 48 * time.Hour} {
				b := Badge{TokenStatus: code, DeactivationDate: timePtr(now.Add(offset))}
				status := ClassifyBadge(b, now, policy)
				if status.Expired {
					assert.False(t, status.Active, "policy %s code %d offset %s", policy, code, offset)
				}
				assert.NotEqual(t, status.Active, status.Inactive)
			}
		}
	}
}

func TestClassifyBadge_NoDeactivationDateNeverExpired(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	for _, policy := range ValidStatusPolicies {
		for code := 0; code <= 5; code++ {
			status := ClassifyBadge(Badge{TokenStatus: code}, now, policy)
			assert.False(t, status.Expired)
			assert.Nil(t, status.DaysLeft)
			assert.False(t, status.ExpiringSoon())
		}
	}
}

func TestClassifyBadge_NormalisesNowToUTC(t *testing.T) {
	paris := time.FixedZone("CEST", 2*60*60)
	deactivation := time.Date(2024, 6, 15, 11, 0, 0, 0, time.UTC)

	// 12:30 in Paris is 10:30 UTC, so the badge has not expired yet.
	now := time.Date(2024, 6, 15, 12, 30, 0, 0, paris)

	status := ClassifyBadge(Badge{TokenStatus: 1, DeactivationDate: &deactivation}, now, StatusPolicyDetail)
	assert.False(t, status.Expired)
	assert.True(t, status.Active)
}

func TestIsExpiringSoon(t *testing.T) {
	cases := []struct {
		daysLeft int
		expected bool
	}{
		{daysLeft: -1, expected: false},
		{daysLeft: 0, expected: true},
		{daysLeft: 15, expected: true},
		{daysLeft: 30, expected: true},
		{daysLeft: 31, expected: false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, IsExpiringSoon(tc.daysLeft), "days left %d", tc.daysLeft)
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysUntil(now, now))
	assert.Equal(t, 30, DaysUntil(now.AddDate(0, 0, 30).Add(time.Hour), now))
	assert.Equal(t, 31, DaysUntil(now.AddDate(0, 0, 31), now))
	assert.Equal(t, -1, DaysUntil(now.Add(-time.Minute), now))
	assert.Equal(t, -2, DaysUntil(now.Add(-25*time.Hour), now))
}

func TestParseStatusPolicy(t *testing.T) {
	p, err := ParseStatusPolicy("aggregate")
	require.NoError(t, err)
	assert.Equal(t, StatusPolicyAggregate, p)

	p, err = ParseStatusPolicy("B")
	require.NoError(t, err)
	assert.Equal(t, StatusPolicyDetail, p)

	_, err = ParseStatusPolicy("strict")
	assert.Error(t, err)
}
