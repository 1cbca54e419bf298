package repository // repository holds data access logic for rooms and bookings

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors.Is for sql.ErrNoRows
	"time"         // booking dates

	"github.com/iliyamo/room-booking/internal/model"
)

// RoomBookingRepo reads rooms and writes bookings in MySQL.  It
// satisfies the store contract used by the booking processor.
type RoomBookingRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewRoomBookingRepo constructs a RoomBookingRepo with the given DB handle.
func NewRoomBookingRepo(db *sql.DB) *RoomBookingRepo {
	return &RoomBookingRepo{db: db}
}

// DB exposes the underlying handle for schema setup and health checks.
func (r *RoomBookingRepo) DB() *sql.DB { return r.db }

// GetAvailableRooms returns every room that has no booking on the
// calendar day of date.  Only the day is compared; the time of day is
// dropped before querying.  Rooms come back ordered by id.
func (r *RoomBookingRepo) GetAvailableRooms(ctx context.Context, date time.Time) ([]model.Room, error) {
	const q = `SELECT r.id, r.name
	           FROM rooms r
	           WHERE r.id NOT IN (SELECT b.room_id FROM room_bookings b WHERE b.date = ?)
	           ORDER BY r.id`
	rows, err := r.db.QueryContext(ctx, q, model.DateOnly(date).Format(model.DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Room, 0)
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(&room.ID, &room.Name); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Save inserts a new booking.  On success the booking's ID is set to
// the generated primary key.
func (r *RoomBookingRepo) Save(ctx context.Context, b *model.RoomBooking) error {
	const q = `INSERT INTO room_bookings (full_name, email, date, room_id) VALUES (?, ?, ?, ?)`
	b.Date = model.DateOnly(b.Date)
	res, err := r.db.ExecContext(ctx, q, b.FullName, b.Email, b.Date.Format(model.DateLayout), b.RoomID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n := int(id)
	b.ID = &n
	return nil
}

// ListRooms returns all rooms ordered by id.
func (r *RoomBookingRepo) ListRooms(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT id, name FROM rooms ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Room, 0)
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(&room.ID, &room.Name); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRoomByID retrieves a room by its ID.  It returns ErrRoomNotFound
// when no row is found.
func (r *RoomBookingRepo) GetRoomByID(ctx context.Context, id int) (*model.Room, error) {
	const q = `SELECT id, name FROM rooms WHERE id = ?`
	var room model.Room
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&room.ID, &room.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// ListBookings returns every stored booking ordered by id.
func (r *RoomBookingRepo) ListBookings(ctx context.Context) ([]model.RoomBooking, error) {
	const q = `SELECT id, full_name, email, date, room_id FROM room_bookings ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.RoomBooking, 0)
	for rows.Next() {
		var (
			b  model.RoomBooking
			id int
		)
		if err := rows.Scan(&id, &b.FullName, &b.Email, &b.Date, &b.RoomID); err != nil {
			return nil, err
		}
		b.ID = &id
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
