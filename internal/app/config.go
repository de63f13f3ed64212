package app

import (
	"time"

	"github.com/jbeshir/badge-desk/internal/domain"
)

const (
	DefaultRosterDriver      = "spreadsheet"
	DefaultRosterFile        = "BADGES.xlsx"
	DefaultWatchDebounce     = 500 * time.Millisecond
	DefaultCacheMaxAge       = time.Minute
	DefaultStatusPolicy      = domain.StatusPolicyDetail
	rosterDriverSpreadsheet  = "spreadsheet"
	rosterDriverMySQL        = "mysql"
	mysqlOrderColumnVariable = "MYSQL_BADGES_ORDER_COLUMN"
)
