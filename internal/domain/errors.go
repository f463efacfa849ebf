package domain

import "fmt"

// ConnectivityError means the source database could not be reached or
// refused authentication.
type ConnectivityError struct {
	Cause error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("database unreachable: %v", e.Cause)
}

func (e *ConnectivityError) Unwrap() error { return e.Cause }

// QueryError means a metadata or data query was rejected by the
// database.
type QueryError struct {
	Query string
	Cause error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Cause)
}

func (e *QueryError) Unwrap() error { return e.Cause }

// DumpError aborts a dump build. It carries the table being processed
// when the underlying query failed.
type DumpError struct {
	Table string
	Cause error
}

func (e *DumpError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("dump failed: %v", e.Cause)
	}
	return fmt.Sprintf("dump failed on table %q: %v", e.Table, e.Cause)
}

func (e *DumpError) Unwrap() error { return e.Cause }

// StorageError means the sink rejected an upload or listing.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error { return e.Cause }
