package dump

import (
	"strings"
	"time"
)

// Prefix is the common key prefix of every stored backup, used by the
// listing endpoint.
const Prefix = "backup-"

var filenameSanitizer = strings.NewReplacer(":", "-", ".", "-")

// Filename derives the storage key for an artifact created at the
// given time, e.g. backup-2025-11-19T01-00-00-000Z.sql. Lexicographic
// order of generated names equals chronological order down to the
// millisecond; two runs inside the same millisecond collide.
func Filename(now time.Time) string {
	ts := filenameSanitizer.Replace(now.UTC().Format(TimestampLayout))
	return Prefix + ts + ".sql"
}
