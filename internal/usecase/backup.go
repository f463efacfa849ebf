package usecase

import (
	"context"
	"database/sql"
	"time"

	"github.com/semmidev/pgvault/internal/domain"
	"github.com/semmidev/pgvault/internal/dump"
)

// contentType marks uploaded artifacts as SQL text.
const contentType = "application/sql"

// State tracks where a single backup invocation is in its lifecycle.
// Done and Failed are terminal; nothing carries over between
// invocations.
type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateDumping    State = "dumping"
	StateUploading  State = "uploading"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// Builder produces a dump artifact from an open connection.
type Builder interface {
	Build(ctx context.Context, db *sql.DB, dbName string) (*domain.Artifact, error)
}

type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

// Notifier reports terminal backup outcomes. Best effort: a
// notification failure never changes the backup result.
type Notifier interface {
	NotifySuccess(ctx context.Context, filename string, size int64) error
	NotifyFailure(ctx context.Context, cause error) error
}

// Backup runs backup invocations end to end: connect, dump, upload,
// disconnect. Single attempt, no retry; the connection is closed on
// every exit path and a close failure during cleanup never replaces
// the original error. Safe for concurrent use: a scheduled run and an
// API-triggered run may overlap, so each Execute call owns an
// invocation with its own state and the Backup itself holds only
// immutable collaborators.
type Backup struct {
	connector domain.Connector
	builder   Builder
	sink      domain.Sink
	notifier  Notifier
	logger    Logger
}

func NewBackup(
	connector domain.Connector,
	builder Builder,
	sink domain.Sink,
	notifier Notifier,
	logger Logger,
) *Backup {
	return &Backup{
		connector: connector,
		builder:   builder,
		sink:      sink,
		notifier:  notifier,
		logger:    logger,
	}
}

// invocation is the state machine for one backup run.
type invocation struct {
	uc    *Backup
	state State
}

// Execute runs the state machine to completion and returns the
// uploaded filename.
func (uc *Backup) Execute(ctx context.Context) (string, error) {
	inv := &invocation{uc: uc, state: StateIdle}
	return inv.run(ctx)
}

func (inv *invocation) run(ctx context.Context) (string, error) {
	uc := inv.uc
	start := time.Now()
	dbName := uc.connector.DatabaseName()

	inv.state = StateConnecting
	uc.logger.Infof("[%s] Starting backup...", dbName)

	db, err := uc.connector.Connect(ctx)
	if err != nil {
		return "", inv.fail(ctx, nil, err)
	}

	inv.state = StateDumping
	artifact, err := uc.builder.Build(ctx, db, dbName)
	if err != nil {
		return "", inv.fail(ctx, db, err)
	}
	uc.logger.Infof("[%s] Dump built, size: %d bytes", dbName, artifact.Size())

	inv.state = StateUploading
	filename := dump.Filename(artifact.CreatedAt)
	meta := domain.Metadata{
		ContentType: contentType,
		Fields: map[string]string{
			"created-at": artifact.CreatedAt.UTC().Format(dump.TimestampLayout),
			"database":   artifact.Database,
		},
	}
	if err := uc.sink.Put(ctx, filename, artifact.SQL, meta); err != nil {
		return "", inv.fail(ctx, db, err)
	}

	uc.closeConnection(db)
	inv.state = StateDone

	uc.logger.Infof("[%s] Backup completed in %s: %s",
		dbName, time.Since(start).Round(time.Second), filename)
	uc.notifySuccess(ctx, filename, artifact.Size())

	return filename, nil
}

// fail moves to the terminal Failed state, releasing the connection
// first when one was established.
func (inv *invocation) fail(ctx context.Context, db *sql.DB, cause error) error {
	inv.state = StateFailed
	if db != nil {
		inv.uc.closeConnection(db)
	}
	inv.uc.logger.Errorf("Backup failed: %v", cause)
	inv.uc.notifyFailure(ctx, cause)
	return cause
}

func (uc *Backup) closeConnection(db *sql.DB) {
	if err := db.Close(); err != nil {
		uc.logger.Warnf("Closing database connection: %v", err)
	}
}

func (uc *Backup) notifySuccess(ctx context.Context, filename string, size int64) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.NotifySuccess(ctx, filename, size); err != nil {
		uc.logger.Warnf("Success notification: %v", err)
	}
}

func (uc *Backup) notifyFailure(ctx context.Context, cause error) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.NotifyFailure(ctx, cause); err != nil {
		uc.logger.Warnf("Failure notification: %v", err)
	}
}
