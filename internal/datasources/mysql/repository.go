package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jbeshir/badge-desk/internal/datasources"
	"github.com/jbeshir/badge-desk/internal/domain"
)

const DefaultBadgesTable = "badges"

var _ datasources.RosterLoader = (*Repository)(nil)

// Repository loads the roster from a MySQL table whose columns use the roster column names
// (matched case-insensitively, so first_name and First_Name both work).
type Repository struct {
	db          *sql.DB
	table       string
	orderColumn string
	now         func() time.Time
}

// New creates a repository reading from table. When orderColumn is set, rows are returned
// in that column's order; otherwise the database's natural order is used.
func New(db *sql.DB, table, orderColumn string) *Repository {
	if table == "" {
		table = DefaultBadgesTable
	}
	return &Repository{
		db:          db,
		table:       table,
		orderColumn: orderColumn,
		now:         time.Now,
	}
}

func (r *Repository) LoadRoster(ctx context.Context) (*domain.Roster, error) {
	sb := sqlbuilder.MySQL.NewSelectBuilder()
	sb.Select("*")
	sb.From(r.table)
	if r.orderColumn != "" {
		sb.OrderBy(r.orderColumn).Asc()
	}

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running badges query: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading badges columns: %w", err)
	}

	table := datasources.RawTable{Columns: columns}
	for rows.Next() {
		row := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range row {
			dest[i] = &row[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning badges: %w", err)
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("closing rows iterator: %w", err)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return datasources.BuildRoster(table, r.now()), nil
}
