// Package repository defines the data access layer for rooms and
// bookings.  Errors from the database driver are returned unchanged so
// callers see the original storage failure.
package repository

import "errors"

// ErrRoomNotFound is returned when a room lookup yields no rows.
var ErrRoomNotFound = errors.New("room not found")
