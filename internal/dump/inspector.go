package dump

import (
	"context"
	"database/sql"

	"github.com/semmidev/pgvault/internal/domain"
)

// Table describes one table of the target schema.
type Table struct {
	Name string
}

// Column describes one column in physical (ordinal) order. MaxLength
// is set only for length-constrained types.
type Column struct {
	Name      string
	DataType  string
	MaxLength sql.NullInt64
}

const (
	tablesQuery = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name`

	columnsQuery = `
		SELECT column_name, data_type, character_maximum_length
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position`
)

// Inspector enumerates tables and columns through read-only
// information_schema queries.
type Inspector struct {
	db *sql.DB
}

func NewInspector(db *sql.DB) *Inspector {
	return &Inspector{db: db}
}

// ListTables returns the schema's base tables in lexicographic order.
func (i *Inspector) ListTables(ctx context.Context, schema string) ([]Table, error) {
	rows, err := i.db.QueryContext(ctx, tablesQuery, schema)
	if err != nil {
		return nil, &domain.QueryError{Query: tablesQuery, Cause: err}
	}
	defer rows.Close()

	var tables []Table
	for rows.Next() {
		var t Table
		if err := rows.Scan(&t.Name); err != nil {
			return nil, &domain.QueryError{Query: tablesQuery, Cause: err}
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.QueryError{Query: tablesQuery, Cause: err}
	}

	return tables, nil
}

// ListColumns returns a table's columns in ordinal order.
func (i *Inspector) ListColumns(ctx context.Context, schema, table string) ([]Column, error) {
	rows, err := i.db.QueryContext(ctx, columnsQuery, schema, table)
	if err != nil {
		return nil, &domain.QueryError{Query: columnsQuery, Cause: err}
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var c Column
		if err := rows.Scan(&c.Name, &c.DataType, &c.MaxLength); err != nil {
			return nil, &domain.QueryError{Query: columnsQuery, Cause: err}
		}
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.QueryError{Query: columnsQuery, Cause: err}
	}

	return columns, nil
}
