package app

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jbeshir/badge-desk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func testContext() context.Context {
	return domain.ContextWithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

func TestMustGetEnv(t *testing.T) {
	ctx := testContext()
	t.Setenv("BADGE_TEST_STRING", "bonjour")
	t.Setenv("BADGE_TEST_INT", "8080")
	t.Setenv("BADGE_TEST_BOOL", "TRUE")
	t.Setenv("BADGE_TEST_DURATION", "90s")
	t.Setenv("BADGE_TEST_STRINGS", "a.example.com, b.example.com,,")

	assert.Equal(t, "bonjour", MustGetEnvAsString(ctx, "BADGE_TEST_STRING"))
	assert.Equal(t, 8080, MustGetEnvAsInt(ctx, "BADGE_TEST_INT"))
	assert.True(t, MustGetEnvAsBoolean(ctx, "BADGE_TEST_BOOL"))
	assert.Equal(t, 90*time.Second, MustGetEnvAsDuration(ctx, "BADGE_TEST_DURATION"))
	assert.Equal(t, []string{"a.example.com", "b.example.com"}, MustGetEnvAsStrings(ctx, "BADGE_TEST_STRINGS"))
}

func TestMustGetEnv_Panics(t *testing.T) {
	ctx := testContext()
	t.Setenv("BADGE_TEST_BAD_INT", "huit")
	t.Setenv("BADGE_TEST_BAD_BOOL", "oui")
	t.Setenv("BADGE_TEST_BAD_DURATION", "soon")

	cases := []struct {
		name string
		fn   func()
	}{
		{name: "missing", fn: func() { MustGetEnvAsString(ctx, "BADGE_TEST_DOES_NOT_EXIST") }},
		{name: "bad_int", fn: func() { MustGetEnvAsInt(ctx, "BADGE_TEST_BAD_INT") }},
		{name: "bad_bool", fn: func() { MustGetEnvAsBoolean(ctx, "BADGE_TEST_BAD_BOOL") }},
		{name: "bad_duration", fn: func() { MustGetEnvAsDuration(ctx, "BADGE_TEST_BAD_DURATION") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Panics(t, tc.fn)
		})
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	ctx := testContext()
	t.Setenv("BADGE_TEST_EMPTY", "")
	t.Setenv("BADGE_TEST_SET", "false")
	t.Setenv("BADGE_TEST_INTERVAL", "5m")

	assert.Equal(t, "fallback", GetEnvAsStringOrDefault("BADGE_TEST_EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetEnvAsStringOrDefault("BADGE_TEST_UNSET", "fallback"))
	assert.False(t, GetEnvAsBooleanOrDefault(ctx, "BADGE_TEST_SET", true))
	assert.True(t, GetEnvAsBooleanOrDefault(ctx, "BADGE_TEST_UNSET", true))
	assert.Equal(t, 5*time.Minute, GetEnvAsDurationOrDefault(ctx, "BADGE_TEST_INTERVAL", time.Second))
	assert.Equal(t, time.Second, GetEnvAsDurationOrDefault(ctx, "BADGE_TEST_UNSET", time.Second))
}

func TestSetupRosterLoader(t *testing.T) {
	ctx := testContext()

	t.Setenv("ROSTER_DRIVER", "spreadsheet")
	t.Setenv("ROSTER_FILE", "roster.csv")
	loader, err := setupRosterLoader(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, loader)

	t.Setenv("ROSTER_DRIVER", "carrier-pigeon")
	_, err = setupRosterLoader(ctx)
	assert.ErrorContains(t, err, "unknown roster driver")
}
