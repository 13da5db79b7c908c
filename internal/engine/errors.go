package engine

import "errors"

var (
	// ErrScanInProgress is returned when a scan is started while another
	// scan is still running
	ErrScanInProgress = errors.New("a scan is already in progress")

	// ErrCopyInProgress is returned when a copy is started while another
	// copy is still running
	ErrCopyInProgress = errors.New("a copy is already in progress")

	// ErrNoRoots is returned when a scan is started without any valid
	// source root
	ErrNoRoots = errors.New("no valid source roots")

	// ErrNoExtensions is returned when a scan is started without any
	// parsed extension
	ErrNoExtensions = errors.New("no extensions to search for")

	// ErrNoRecords is returned when a copy is started with an empty
	// result set
	ErrNoRecords = errors.New("no records to copy")

	// ErrNoSelection is returned when a selected-records copy is started
	// with nothing selected
	ErrNoSelection = errors.New("no records selected")

	// ErrNoDestination is returned when a copy is started without a
	// destination root
	ErrNoDestination = errors.New("no destination folder")

	// ErrBusy is returned when the result set cannot be mutated because
	// an operation is running
	ErrBusy = errors.New("an operation is in progress")
)
