package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrAppNotFound is returned when an application has no CURRENT pointer.
	ErrAppNotFound = errors.New("app not found")

	// ErrInvalidAppName is returned for names that cannot be used as a
	// single path segment.
	ErrInvalidAppName = errors.New("invalid app name")
)

// ErrSnapshotCorrupt is returned when a snapshot fails its checksum or
// cannot be decoded.
type ErrSnapshotCorrupt struct {
	Path string
	Err  error
}

func (e *ErrSnapshotCorrupt) Error() string {
	return fmt.Sprintf("corrupt snapshot %s: %v", e.Path, e.Err)
}

func (e *ErrSnapshotCorrupt) Unwrap() error {
	return e.Err
}
