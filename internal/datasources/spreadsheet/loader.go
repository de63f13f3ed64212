// Package spreadsheet loads badge rosters from .xlsx and .csv exports.
package spreadsheet

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jbeshir/badge-desk/internal/datasources"
	"github.com/jbeshir/badge-desk/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are neither .xlsx nor .csv.
var ErrUnsupportedFormat = errors.New("unsupported roster file format")

var _ datasources.RosterLoader = (*Loader)(nil)

// Loader reads the roster from a spreadsheet on disk. The first sheet of a workbook is used,
// and its first row is the header.
type Loader struct {
	Path string
	Now  func() time.Time
}

func NewLoader(path string) *Loader {
	return &Loader{Path: path, Now: time.Now}
}

func (l *Loader) LoadRoster(ctx context.Context) (*domain.Roster, error) {
	var (
		table datasources.RawTable
		err   error
	)

	switch strings.ToLower(filepath.Ext(l.Path)) {
	case ".xlsx", ".xlsm":
		table, err = readWorkbook(l.Path)
	case ".csv":
		table, err = readCSV(l.Path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, l.Path)
	}
	if err != nil {
		return nil, err
	}

	logger := domain.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "read roster spreadsheet",
		"path", l.Path,
		"columns", len(table.Columns),
		"rows", len(table.Rows),
	)

	return datasources.BuildRoster(table, l.Now()), nil
}

func readWorkbook(path string) (datasources.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return datasources.RawTable{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return datasources.RawTable{}, fmt.Errorf("workbook %s has no sheets", path)
	}

	// Raw values keep dates as serial numbers instead of locale-formatted text.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return datasources.RawTable{}, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return datasources.RawTable{}, nil
	}

	table := datasources.RawTable{Columns: rows[0]}
	for _, row := range rows[1:] {
		out := make([]sql.NullString, len(table.Columns))
		for i := range out {
			if i >= len(row) || strings.TrimSpace(row[i]) == "" {
				continue
			}
			value := row[i]
			if datasources.IsDateColumn(table.Columns[i]) {
				value = serialToTimestamp(value)
			}
			out[i] = sql.NullString{String: value, Valid: true}
		}
		table.Rows = append(table.Rows, out)
	}

	return table, nil
}

// serialToTimestamp converts an Excel date serial to RFC 3339. Values that are not
// numbers are returned unchanged for the text date parser.
func serialToTimestamp(value string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return value
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func readCSV(path string) (datasources.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return datasources.RawTable{}, fmt.Errorf("opening csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	return parseCSV(f)
}

func parseCSV(r io.Reader) (datasources.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return datasources.RawTable{}, nil
	}
	if err != nil {
		return datasources.RawTable{}, fmt.Errorf("reading csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	table := datasources.RawTable{Columns: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return datasources.RawTable{}, fmt.Errorf("reading csv row: %w", err)
		}

		row := make([]sql.NullString, len(header))
		for i := range row {
			if i < len(record) && strings.TrimSpace(record[i]) != "" {
				row[i] = sql.NullString{String: record[i], Valid: true}
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
