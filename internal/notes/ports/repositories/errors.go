package repositories

import "errors"

// ErrNoteNotFound is returned by Update and Delete when no row matches the id.
var ErrNoteNotFound = errors.New("note not found")
