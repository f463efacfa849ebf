package dump

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/semmidev/pgvault/internal/domain"
)

// defaultBatchSize bounds how many INSERT statements are joined per
// write during text assembly. The emitted statement sequence is the
// same for any batch size.
const defaultBatchSize = 500

// Builder assembles a complete dump artifact for one schema: per table
// a DROP/CREATE pair plus one INSERT per row, tables in lexicographic
// order, the whole text buffered in memory before upload.
//
// The CREATE statements are a simplified reconstruction (name, type and
// optional max length only); constraints, indexes, defaults and foreign
// keys are intentionally not reproduced. A restore of the artifact
// drops any pre-existing table of the same name.
type Builder struct {
	schema    string
	batchSize int
	now       func() time.Time
}

func NewBuilder(schema string) *Builder {
	return &Builder{
		schema:    schema,
		batchSize: defaultBatchSize,
		now:       time.Now,
	}
}

// Build dumps every table of the configured schema into one artifact.
// Any query failure aborts the whole build with a DumpError naming the
// table being processed; no partial artifact is returned.
func (b *Builder) Build(ctx context.Context, db *sql.DB, dbName string) (*domain.Artifact, error) {
	inspector := NewInspector(db)

	tables, err := inspector.ListTables(ctx, b.schema)
	if err != nil {
		return nil, &domain.DumpError{Cause: err}
	}

	createdAt := b.now().UTC()

	var out strings.Builder
	out.WriteString("-- pgvault Backup\n")
	out.WriteString("-- Date: " + createdAt.Format(TimestampLayout) + "\n")
	out.WriteString("-- Database: " + dbName + "\n\n")

	for _, table := range tables {
		if err := b.writeTable(ctx, &out, inspector, db, table.Name); err != nil {
			return nil, &domain.DumpError{Table: table.Name, Cause: err}
		}
	}

	return &domain.Artifact{
		Database:  dbName,
		CreatedAt: createdAt,
		SQL:       []byte(out.String()),
	}, nil
}

func (b *Builder) writeTable(ctx context.Context, out *strings.Builder, inspector *Inspector, db *sql.DB, table string) error {
	columns, err := inspector.ListColumns(ctx, b.schema, table)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "-- Table: %s\n", table)
	fmt.Fprintf(out, "DROP TABLE IF EXISTS %s CASCADE;\n", QuoteIdent(table))
	fmt.Fprintf(out, "CREATE TABLE %s (%s);\n", QuoteIdent(table), columnDefs(columns))

	if err := b.writeRows(ctx, out, db, table); err != nil {
		return err
	}

	out.WriteString("\n")
	return nil
}

// writeRows emits the data block for one table: a comment header and
// one INSERT per row, in whatever order the source returns them (no
// ORDER BY, so row order is not reproducible across runs). Tables with
// no rows produce no block at all.
func (b *Builder) writeRows(ctx context.Context, out *strings.Builder, db *sql.DB, table string) error {
	query := fmt.Sprintf("SELECT * FROM %s.%s", QuoteIdent(b.schema), QuoteIdent(table))

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return &domain.QueryError{Query: query, Cause: err}
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return &domain.QueryError{Query: query, Cause: err}
	}
	columnList := ColumnList(names)

	values := make([]any, len(names))
	scanArgs := make([]any, len(names))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	first := true
	batch := make([]string, 0, b.batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		out.WriteString(strings.Join(batch, "\n"))
		out.WriteString("\n")
		batch = batch[:0]
	}

	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return &domain.QueryError{Query: query, Cause: err}
		}

		if first {
			fmt.Fprintf(out, "\n-- Data for %s\n", table)
			first = false
		}

		literals := make([]string, len(values))
		for i, v := range values {
			literals[i] = FromDriver(v).SQL()
		}

		batch = append(batch, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
			QuoteIdent(table), columnList, strings.Join(literals, ", ")))
		if len(batch) == b.batchSize {
			flush()
		}
	}
	if err := rows.Err(); err != nil {
		return &domain.QueryError{Query: query, Cause: err}
	}
	flush()

	return nil
}

func columnDefs(columns []Column) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		if c.MaxLength.Valid {
			defs[i] = fmt.Sprintf("%s %s(%d)", c.Name, c.DataType, c.MaxLength.Int64)
		} else {
			defs[i] = fmt.Sprintf("%s %s", c.Name, c.DataType)
		}
	}
	return strings.Join(defs, ", ")
}
