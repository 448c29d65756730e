package service

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyBatch means a batch upload was requested with no files.
	ErrEmptyBatch = errors.New("upload batch contains no files")

	// ErrDuplicateRole means two files of a batch resolve to the same
	// manifest slot, so one would silently overwrite the other.
	ErrDuplicateRole = errors.New("upload batch contains two files of the same role")

	// ErrKeyNotFound means the requested remote-config parameter does not
	// exist; no update is issued in that case.
	ErrKeyNotFound = errors.New("remote config key not found")

	// ErrUnsupportedFileType means the requested file name carries an
	// extension outside the firmware set (bin, zip).
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// ValidationError aggregates every problem found in one request so the
// caller can fix all of them in a single round trip.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}
