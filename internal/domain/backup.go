package domain

import (
	"time"
)

// Artifact is the fully assembled dump produced by one backup run.
// It is immutable once built; the orchestrator owns it until it is
// handed to the storage sink.
type Artifact struct {
	Database  string
	CreatedAt time.Time
	SQL       []byte
}

// Size returns the artifact body length in bytes.
func (a *Artifact) Size() int64 {
	return int64(len(a.SQL))
}

// BackupRecord describes a stored backup. It exists only as a storage
// key plus the metadata written alongside it; nothing mutates it after
// upload.
type BackupRecord struct {
	Filename  string
	CreatedAt time.Time
	SizeBytes int64
}
