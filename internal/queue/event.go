// Package queue defines the booking events exchanged over RabbitMQ and
// the publisher and consumer that move them.
package queue

// RoomBookedQueue is the durable queue carrying RoomBookedEvent messages.
const RoomBookedQueue = "room.booked"

// RoomBookedEvent is published after a booking has been stored.  It
// carries enough to write an audit line without reading the database.
type RoomBookedEvent struct {
	RoomBookingID *int   `json:"room_booking_id"` // nil when the store assigned no id
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Date          string `json:"date"`      // YYYY-MM-DD
	BookedAt      string `json:"booked_at"` // RFC3339, UTC
}
