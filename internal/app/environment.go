package app

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jbeshir/badge-desk/internal/domain"
)

func MustGetEnvAsString(ctx context.Context, name string) string {
	s, exists := os.LookupEnv(name)
	if !exists {
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "environment variable missing", "variable_name", name)
		panic(fmt.Sprintf("missing environment variable [%s]", name))
	}

	return s
}

func MustGetEnvAsInt(ctx context.Context, name string) int {
	return parseIntEnv(ctx, name, MustGetEnvAsString(ctx, name))
}

func MustGetEnvAsBoolean(ctx context.Context, name string) bool {
	return parseBooleanEnv(ctx, name, MustGetEnvAsString(ctx, name))
}

func MustGetEnvAsDuration(ctx context.Context, name string) time.Duration {
	return parseDurationEnv(ctx, name, MustGetEnvAsString(ctx, name))
}

// MustGetEnvAsStrings splits a comma-separated variable, dropping empty entries.
func MustGetEnvAsStrings(ctx context.Context, name string) []string {
	var out []string
	for _, s := range strings.Split(MustGetEnvAsString(ctx, name), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func GetEnvAsStringOrDefault(name, def string) string {
	if s, exists := os.LookupEnv(name); exists && s != "" {
		return s
	}
	return def
}

func GetEnvAsBooleanOrDefault(ctx context.Context, name string, def bool) bool {
	s, exists := os.LookupEnv(name)
	if !exists || s == "" {
		return def
	}
	return parseBooleanEnv(ctx, name, s)
}

func GetEnvAsDurationOrDefault(ctx context.Context, name string, def time.Duration) time.Duration {
	s, exists := os.LookupEnv(name)
	if !exists || s == "" {
		return def
	}
	return parseDurationEnv(ctx, name, s)
}

func parseIntEnv(ctx context.Context, name, s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to parse environment variable as integer",
			"variable_name", name,
			"variable_value", s,
		)
		panic(fmt.Sprintf("unable to parse environment variable as integer [%s]: %s", name, s))
	}

	return v
}

func parseBooleanEnv(ctx context.Context, name, s string) bool {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	default:
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to parse environment variable as boolean ('true'/'false')",
			"variable_name", name,
			"variable_value", s,
		)
		panic(fmt.Sprintf("unable to parse environment variable as boolean ('true'/'false') [%s]: %s", name, s))
	}
}

func parseDurationEnv(ctx context.Context, name, s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to parse environment variable as duration",
			"variable_name", name,
			"variable_value", s,
		)
		panic(fmt.Sprintf("unable to parse environment variable as duration [%s]: %s", name, s))
	}

	return duration
}
