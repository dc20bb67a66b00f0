package pipeline

import "errors"

var (
	// ErrSubscription means the ingestion channel could not attach to the
	// event stream. Ingestion stays off for the rest of the session.
	ErrSubscription = errors.New("ingestion subscription failed")

	// ErrFilterRequest wraps failures of delegated filter requests
	ErrFilterRequest = errors.New("filter request failed")

	// ErrClipboard wraps clipboard write failures
	ErrClipboard = errors.New("clipboard write failed")

	// ErrRender means a view could not be projected from its records
	ErrRender = errors.New("render failed")

	// ErrNoPaths is returned for a drop without any path
	ErrNoPaths = errors.New("drop contains no paths")

	// ErrInvalidPath is returned for a drop containing a blank path
	ErrInvalidPath = errors.New("drop contains a blank path")

	// ErrNothingToExport is returned when no rows are visible
	ErrNothingToExport = errors.New("no visible links to export")

	// ErrAlreadyAttached is returned when Attach is called twice
	ErrAlreadyAttached = errors.New("ingestion already attached")

	// ErrClosed is returned after the presenter was closed
	ErrClosed = errors.New("presenter closed")
)
