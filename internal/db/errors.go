package db

import "errors"

var (
	// ErrNotFound is returned by updates targeting a record that does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrRemoteIDImmutable is returned when a sync-state write would change a
	// remote id that has already been assigned.
	ErrRemoteIDImmutable = errors.New("remote id is immutable once assigned")

	// ErrLocalOnly is returned when a sync-state write targets a record that
	// must never leave this machine.
	ErrLocalOnly = errors.New("record is local-only and cannot be synced")
)
