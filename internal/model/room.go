package model

// Room is a bookable meeting room.  Rooms are reference data seeded
// when the schema is created and are never modified by the booking
// flow.
//
// Fields:
//  ID   – primary key identifier.
//  Name – display name shown to clients.
type Room struct {
	ID   int    `json:"id"`   // rooms.id
	Name string `json:"name"` // rooms.name
}
