package database

import (
	"context"
	"database/sql"
	"fmt"
)

// SeedRooms are inserted by Migrate when the rooms table is empty.
var SeedRooms = []string{"Conference Room A", "Conference Room B", "Conference Room C"}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS rooms (
		id   INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS room_bookings (
		id        INT AUTO_INCREMENT PRIMARY KEY,
		full_name VARCHAR(50) NOT NULL,
		email     VARCHAR(50) NOT NULL,
		date      DATE NOT NULL,
		room_id   INT NOT NULL,
		INDEX idx_room_bookings_date (date),
		CONSTRAINT fk_room_bookings_room FOREIGN KEY (room_id) REFERENCES rooms (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the rooms and room_bookings tables when missing and
// seeds the default rooms into an empty rooms table.  It is safe to run
// on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&n); err != nil {
		return fmt.Errorf("count rooms: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, name := range SeedRooms {
		if _, err := db.ExecContext(ctx, `INSERT INTO rooms (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("seed room %q: %w", name, err)
		}
	}
	return nil
}
