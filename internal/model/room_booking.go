package model

import "time"

// DateLayout is the wire format for booking dates (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// RoomBooking is a persisted association of one room, one date and
// the requester's contact details.  A booking is created once by the
// request processor and never updated afterwards.
//
// Fields:
//  ID       – primary key; nil until the store assigns one.
//  FullName – name of the person who booked the room.
//  Email    – contact email of the person who booked the room.
//  Date     – calendar day of the booking; time of day is ignored.
//  RoomID   – foreign key into rooms.
type RoomBooking struct {
	ID       *int      `json:"id"`       // room_bookings.id (nil before insert)
	FullName string    `json:"fullName"` // room_bookings.full_name
	Email    string    `json:"email"`    // room_bookings.email
	Date     time.Time `json:"date"`     // room_bookings.date
	RoomID   int       `json:"roomId"`   // room_bookings.room_id
}

// DateOnly truncates t to midnight UTC of its calendar day.  Bookings
// are compared by day only, so every date entering the store passes
// through here first.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
