package model

import (
	"errors"
	"time"
)

// ErrDateInPast is returned by Validate when the requested day has
// already passed.
var ErrDateInPast = errors.New("date must be in the future")

// RoomBookingRequest is the input of a booking attempt.  It carries no
// identity and is never persisted.
type RoomBookingRequest struct {
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Date     time.Time `json:"date"`
}

// Validate checks that the requested day is not in the past.  Today
// counts as a valid day.
func (r *RoomBookingRequest) Validate(now time.Time) error {
	if DateOnly(r.Date).Before(DateOnly(now)) {
		return ErrDateInPast
	}
	return nil
}
