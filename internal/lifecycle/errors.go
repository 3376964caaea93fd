package lifecycle

import "errors"

var (
	// ErrNotFound means the named file is not in the pending registry.
	ErrNotFound = errors.New("file not found")

	// ErrInvalidTarget means the requested folder is not a member of the
	// target set and was not flagged as a new folder.
	ErrInvalidTarget = errors.New("invalid target folder")
)
