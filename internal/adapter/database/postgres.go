package database

import (
	"context"
	"database/sql"
	"net/url"
	"strings"

	_ "github.com/lib/pq"

	"github.com/semmidev/pgvault/internal/domain"
)

// Postgres opens connections to the source database from a single
// connection URL.
type Postgres struct {
	connString string
}

func NewPostgres(connString string) *Postgres {
	return &Postgres{connString: connString}
}

// Connect opens and verifies a connection. Failures surface as
// ConnectivityError; the caller owns closing the returned handle.
func (p *Postgres) Connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("postgres", p.connString)
	if err != nil {
		return nil, &domain.ConnectivityError{Cause: err}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &domain.ConnectivityError{Cause: err}
	}

	return db, nil
}

// DatabaseName extracts the database name from the connection URL,
// best effort. Anything unparsable reports "unknown".
func (p *Postgres) DatabaseName() string {
	u, err := url.Parse(p.connString)
	if err != nil || u.Host == "" {
		return "unknown"
	}

	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return "unknown"
	}
	return name
}
