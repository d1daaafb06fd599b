package learning

import "fmt"

// StorageError reports a failed read or write of one of the learning files.
// The in-memory state is rolled back before it is returned, so callers can
// retry the operation or keep running in-memory-only for the session.
type StorageError struct {
	Op   string // "load", "put", "remove", "append", ...
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("learning storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
