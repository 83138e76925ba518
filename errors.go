package dictionary

import (
	"errors"
	"fmt"

	"github.com/mozilla/glean-dictionary/catalog"
	"github.com/mozilla/glean-dictionary/expiration"
)

var (
	// ErrInvalidHorizon is returned when an expiration horizon is neither
	// "never" nor a non-negative number of months.
	ErrInvalidHorizon = errors.New("invalid expiration horizon")

	// ErrNilCollection is returned when a nil collection is passed where
	// items are required.
	ErrNilCollection = errors.New("nil collection")

	// ErrAppNotFound is returned when an application has no catalog.
	ErrAppNotFound = errors.New("app not found")

	// ErrInvalidAppName is returned for application names that cannot be
	// stored.
	ErrInvalidAppName = errors.New("invalid app name")
)

// ErrSnapshotCorrupt indicates a catalog snapshot that failed verification
// or decoding.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrSnapshotCorrupt struct {
	Path  string
	cause error
}

func (e *ErrSnapshotCorrupt) Error() string {
	return fmt.Sprintf("corrupt snapshot: %s", e.Path)
}

func (e *ErrSnapshotCorrupt) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, expiration.ErrInvalidHorizon) {
		return fmt.Errorf("%w: %w", ErrInvalidHorizon, err)
	}
	if errors.Is(err, catalog.ErrAppNotFound) {
		return fmt.Errorf("%w: %w", ErrAppNotFound, err)
	}
	if errors.Is(err, catalog.ErrInvalidAppName) {
		return fmt.Errorf("%w: %w", ErrInvalidAppName, err)
	}
	var sc *catalog.ErrSnapshotCorrupt
	if errors.As(err, &sc) {
		return &ErrSnapshotCorrupt{Path: sc.Path, cause: err}
	}

	return err
}
