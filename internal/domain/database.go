package domain

import (
	"context"
	"database/sql"
)

// Connector opens connections to the source database.
type Connector interface {
	// Connect establishes and verifies a connection. A failure here is
	// a ConnectivityError.
	Connect(ctx context.Context) (*sql.DB, error)

	// DatabaseName reports the name of the target database, or
	// "unknown" when it cannot be derived from the connection string.
	DatabaseName() string
}
