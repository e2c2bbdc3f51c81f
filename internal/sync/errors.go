package sync

import "errors"

var (
	// ErrBoardNotFound means the resolved team has no board whose title
	// matches the routed board name.
	ErrBoardNotFound = errors.New("board not found")

	// ErrStatusSchemaMissing means the board's schema has no property
	// named "Status", so no status transition can be computed.
	ErrStatusSchemaMissing = errors.New("board has no Status property")

	// ErrStatusOptionNotFound means the Status property exists but lacks
	// an option matching the action's label, meaning the two systems' labels
	// have drifted apart.
	ErrStatusOptionNotFound = errors.New("status option not found")
)
