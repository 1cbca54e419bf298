package model

import "time"

// BookingResultFlag is the outcome of a single booking attempt.
type BookingResultFlag string

const (
	BookingSuccess BookingResultFlag = "Success"
	BookingFailure BookingResultFlag = "Failure"
)

// BookRoomResult is returned for every booking attempt.  It echoes the
// request's contact details and date regardless of the outcome.
// RoomBookingID is set only when Flag is BookingSuccess and the store
// assigned an identity to the new booking.
type BookRoomResult struct {
	FullName      string            `json:"fullName"`
	Email         string            `json:"email"`
	Date          time.Time         `json:"date"`
	Flag          BookingResultFlag `json:"flag"`
	RoomBookingID *int              `json:"roomBookingId,omitempty"`
}

// RoomBookingRecord is the contact/date projection of a result.
type RoomBookingRecord struct {
	FullName string
	Email    string
	Date     time.Time
}

// ToRecord returns the contact/date projection of r.
func (r *BookRoomResult) ToRecord() RoomBookingRecord {
	return RoomBookingRecord{FullName: r.FullName, Email: r.Email, Date: r.Date}
}
