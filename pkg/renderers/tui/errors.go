package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrDeclined signals the user answered no to the submit confirmation.
	ErrDeclined = errors.New("tui: submission declined")
)
