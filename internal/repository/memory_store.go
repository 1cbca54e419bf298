package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/room-booking/internal/model"
)

// MemoryStore keeps rooms and bookings in process memory.  It is used
// when no database is configured (DB_DRIVER=memory) and in tests.
// Booking ids are assigned sequentially starting at 1.
type MemoryStore struct {
	mu       sync.RWMutex
	rooms    []model.Room
	bookings []model.RoomBooking
	nextID   int
}

// NewMemoryStore returns a store holding the given rooms, sorted by id.
func NewMemoryStore(rooms ...model.Room) *MemoryStore {
	rs := append([]model.Room(nil), rooms...)
	sort.Slice(rs, func(i, j int) bool { return rs[i].ID < rs[j].ID })
	return &MemoryStore{rooms: rs, nextID: 1}
}

// AddBooking stores b as-is, assigning an id when b has none.
func (s *MemoryStore) AddBooking(b model.RoomBooking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertLocked(&b)
}

func (s *MemoryStore) GetAvailableRooms(_ context.Context, date time.Time) ([]model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := model.DateOnly(date)
	booked := make(map[int]struct{})
	for _, b := range s.bookings {
		if b.Date.Equal(day) {
			booked[b.RoomID] = struct{}{}
		}
	}
	out := make([]model.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		if _, ok := booked[r.ID]; !ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, b *model.RoomBooking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = nil
	s.insertLocked(b)
	return nil
}

func (s *MemoryStore) ListRooms(_ context.Context) ([]model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Room{}, s.rooms...), nil
}

func (s *MemoryStore) GetRoomByID(_ context.Context, id int) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rooms {
		if r.ID == id {
			room := r
			return &room, nil
		}
	}
	return nil, ErrRoomNotFound
}

func (s *MemoryStore) ListBookings(_ context.Context) ([]model.RoomBooking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.RoomBooking, len(s.bookings))
	for i, b := range s.bookings {
		id := *b.ID
		b.ID = &id
		out[i] = b
	}
	return out, nil
}

// insertLocked requires s.mu to be held for writing.
func (s *MemoryStore) insertLocked(b *model.RoomBooking) {
	b.Date = model.DateOnly(b.Date)
	if b.ID == nil {
		id := s.nextID
		b.ID = &id
	}
	if *b.ID >= s.nextID {
		s.nextID = *b.ID + 1
	}
	stored := *b
	id := *b.ID
	stored.ID = &id
	s.bookings = append(s.bookings, stored)
}
