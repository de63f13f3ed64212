package app

import (
	"context"
	"fmt"

	"github.com/jbeshir/badge-desk/internal/command"
	"github.com/jbeshir/badge-desk/internal/datasources"
	"github.com/jbeshir/badge-desk/internal/datasources/mysql"
	"github.com/jbeshir/badge-desk/internal/datasources/spreadsheet"
	"github.com/jbeshir/badge-desk/internal/domain"
	"github.com/jbeshir/badge-desk/internal/metrics"
	"github.com/jbeshir/badge-desk/internal/transport/web/router"
	"github.com/jbeshir/badge-desk/internal/transport/web/server"
)

type Component interface {
	Run(ctx context.Context) error
}

func Setup(ctx context.Context) ([]Component, error) {
	logger := domain.LoggerFromContext(ctx)

	loader, err := setupRosterLoader(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up roster loader: %w", err)
	}

	defaultPolicy, err := domain.ParseStatusPolicy(
		GetEnvAsStringOrDefault("DEFAULT_STATUS_POLICY", string(DefaultStatusPolicy)))
	if err != nil {
		return nil, fmt.Errorf("parsing DEFAULT_STATUS_POLICY: %w", err)
	}

	m := metrics.New()
	store := datasources.NewRosterStore()
	reloadCmd := command.NewReloadRoster(loader, store, m)

	// A missing roster at startup is not fatal; the API reports it until a reload succeeds.
	if _, err := reloadCmd.Execute(ctx, command.ReloadRosterRequest{}); err != nil {
		logger.ErrorContext(ctx, "initial roster load failed", "error", err)
	}

	httpRouter, err := router.MakeRouter(
		store,
		router.Commands{
			Search:  command.NewSearchBadges(store),
			Detail:  command.NewGetBadgeDetail(store),
			Respond: command.NewRespondToMessage(store),
			Stats:   command.NewComputeRosterStats(store),
			Reload:  reloadCmd,
		},
		router.FeedConfig{
			BaseURL:     MustGetEnvAsString(ctx, "RSS_FEED_BASE_URL"),
			AuthorName:  MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_NAME"),
			AuthorEmail: MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_EMAIL"),
		},
		defaultPolicy,
		GetEnvAsDurationOrDefault(ctx, "CACHE_MAX_AGE", DefaultCacheMaxAge),
		m,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create HTTP router: %w", err)
	}

	components := []Component{
		&server.Server{
			TLSDisabled:       MustGetEnvAsBoolean(ctx, "HTTP_TLS_DISABLED"),
			TLSDisabledPort:   MustGetEnvAsInt(ctx, "PORT"),
			AutocertHostnames: MustGetEnvAsStrings(ctx, "HTTP_AUTOCERT_HOSTNAMES"),
			Router:            httpRouter,
		},
	}

	if spreadsheetLoader, ok := loader.(*spreadsheet.Loader); ok &&
		GetEnvAsBooleanOrDefault(ctx, "ROSTER_WATCH", false) {
		components = append(components, &spreadsheet.Watcher{
			Path:     spreadsheetLoader.Path,
			Debounce: DefaultWatchDebounce,
			OnChange: func(ctx context.Context) error {
				_, err := reloadCmd.Execute(ctx, command.ReloadRosterRequest{})
				return err
			},
		})
	}

	if interval := GetEnvAsDurationOrDefault(ctx, "ROSTER_RELOAD_INTERVAL", 0); interval > 0 {
		components = append(components, &command.RunRosterReload{
			Reload:   reloadCmd,
			Interval: interval,
		})
	}

	return components, nil
}

func setupRosterLoader(ctx context.Context) (datasources.RosterLoader, error) {
	switch driver := GetEnvAsStringOrDefault("ROSTER_DRIVER", DefaultRosterDriver); driver {
	case rosterDriverSpreadsheet:
		return spreadsheet.NewLoader(GetEnvAsStringOrDefault("ROSTER_FILE", DefaultRosterFile)), nil
	case rosterDriverMySQL:
		db, err := mysql.Connect(ctx, MustGetEnvAsString(ctx, "MYSQL_URI"))
		if err != nil {
			return nil, fmt.Errorf("connecting to MySQL: %w", err)
		}
		return mysql.New(
			db,
			GetEnvAsStringOrDefault("MYSQL_BADGES_TABLE", mysql.DefaultBadgesTable),
			GetEnvAsStringOrDefault(mysqlOrderColumnVariable, ""),
		), nil
	default:
		return nil, fmt.Errorf("unknown roster driver [%s]", driver)
	}
}
