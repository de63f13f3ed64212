package datasources

import (
	"database/sql"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jbeshir/badge-desk/internal/domain"
)

// Column names as they appear in the roster sources, after NormalizeColumnName.
const (
	ColumnFirstName        = "First_Name"
	ColumnLastName         = "Last_Name"
	ColumnExternalID       = "External_System_ID"
	ColumnInternalNumber   = "Internal_Number"
	ColumnTokenStatus      = "Token_Status"
	ColumnIssueDate        = "Issue_Date"
	ColumnActivationDate   = "Activation_Date"
	ColumnDeactivationDate = "Deactivation_Date"
	ColumnVIP              = "VIP"
	ColumnAddress          = "Address"
	ColumnRoles            = "Roles"
	ColumnIssueLevel       = "Issue_Level"
	ColumnType             = "Type"
)

var dateColumns = []string{
	ColumnIssueDate,
	ColumnActivationDate,
	ColumnDeactivationDate,
	"ID_Modify_Time",
	"Load_Date",
	"Token_Modify_Time",
}

// RawTable is a roster source read as text, one cell per column per row.
// Invalid cells are missing values; rows shorter than Columns are padded with missing values.
type RawTable struct {
	Columns []string
	Rows    [][]sql.NullString
}

// NormalizeColumnName trims a header and replaces spaces with underscores,
// so "Deactivation Date " and "Deactivation_Date" name the same column.
func NormalizeColumnName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// IsDateColumn reports whether the normalised column holds timestamps.
func IsDateColumn(name string) bool {
	for _, c := range dateColumns {
		if strings.EqualFold(c, NormalizeColumnName(name)) {
			return true
		}
	}
	return false
}

// BuildRoster decodes a raw table into a roster. It never fails: unknown columns are
// ignored, unparseable dates become nil and unparseable status codes become 0.
func BuildRoster(table RawTable, loadedAt time.Time) *domain.Roster {
	index := make(map[string]int, len(table.Columns))
	for i, c := range table.Columns {
		key := strings.ToLower(NormalizeColumnName(c))
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}

	has := func(column string) bool {
		_, ok := index[strings.ToLower(column)]
		return ok
	}

	columns := domain.RosterColumns{
		VIP:              has(ColumnVIP),
		DeactivationDate: has(ColumnDeactivationDate),
		Type:             has(ColumnType),
	}

	badges := make([]domain.Badge, 0, len(table.Rows))
	for _, row := range table.Rows {
		cell := func(column string) (string, bool) {
			i, ok := index[strings.ToLower(column)]
			if !ok || i >= len(row) || !row[i].Valid {
				return "", false
			}
			return row[i].String, true
		}
		text := func(column string) string {
			s, _ := cell(column)
			return s
		}
		date := func(column string) *time.Time {
			s, ok := cell(column)
			if !ok {
				return nil
			}
			return ParseTimestamp(s)
		}

		badges = append(badges, domain.Badge{
			FirstName:        text(ColumnFirstName),
			LastName:         text(ColumnLastName),
			ExternalID:       normalizeIdentifier(text(ColumnExternalID)),
			InternalNumber:   normalizeIdentifier(text(ColumnInternalNumber)),
			TokenStatus:      parseStatusCode(text(ColumnTokenStatus)),
			IssueDate:        date(ColumnIssueDate),
			ActivationDate:   date(ColumnActivationDate),
			DeactivationDate: date(ColumnDeactivationDate),
			VIP:              parseVIP(text(ColumnVIP)),
			Address:          strings.TrimSpace(text(ColumnAddress)),
			Roles:            strings.TrimSpace(text(ColumnRoles)),
			IssueLevel:       strings.TrimSpace(text(ColumnIssueLevel)),
			Type:             strings.TrimSpace(text(ColumnType)),
		})
	}

	return domain.NewRoster(badges, columns, loadedAt)
}

var zonedLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 -0700 MST",
}

// Naive timestamps are taken to be UTC. Slash dates are day first.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseTimestamp parses the timestamp formats found in roster sources and normalises
// the result to UTC. It returns nil for empty or unrecognised input.
func ParseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t
		}
	}

	return nil
}

func parseStatusCode(s string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

func parseVIP(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "true" {
		return true
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f == 1
}

// normalizeIdentifier drops a trailing ".0" left by spreadsheets storing integer IDs as floats.
func normalizeIdentifier(s string) string {
	s = strings.TrimSpace(s)
	if trimmed, ok := strings.CutSuffix(s, ".0"); ok {
		if _, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return trimmed
		}
	}
	return s
}
