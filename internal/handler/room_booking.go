package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/model"
	"github.com/iliyamo/room-booking/internal/processor"
	"github.com/iliyamo/room-booking/internal/queue"
	"github.com/iliyamo/room-booking/internal/repository"
)

// BookingProcessor books a room for a request.
type BookingProcessor interface {
	BookRoom(ctx context.Context, request *model.RoomBookingRequest) (*model.BookRoomResult, error)
}

// RoomReader is the read side of the room store.
type RoomReader interface {
	ListRooms(ctx context.Context) ([]model.Room, error)
	GetRoomByID(ctx context.Context, id int) (*model.Room, error)
	GetAvailableRooms(ctx context.Context, date time.Time) ([]model.Room, error)
	ListBookings(ctx context.Context) ([]model.RoomBooking, error)
}

// EventPublisher announces stored bookings.
type EventPublisher interface {
	PublishRoomBooked(ctx context.Context, ev queue.RoomBookedEvent) error
}

// RoomBookingHandler serves the room and booking endpoints.
type RoomBookingHandler struct {
	Processor BookingProcessor
	Rooms     RoomReader
	Events    EventPublisher
	Log       *zap.Logger
	Now       func() time.Time // clock used for date validation

	pending sync.WaitGroup // in-flight event publishes
}

// NewRoomBookingHandler panics if the processor or room reader is nil.
// A nil publisher disables events.
func NewRoomBookingHandler(p BookingProcessor, rooms RoomReader, events EventPublisher, log *zap.Logger) *RoomBookingHandler {
	if p == nil || rooms == nil {
		panic("nil dependency passed to NewRoomBookingHandler")
	}
	if events == nil {
		events = queue.NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RoomBookingHandler{Processor: p, Rooms: rooms, Events: events, Log: log, Now: time.Now}
}

type bookRoomReq struct {
	FullName string `json:"fullName" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email,max=50"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
}

// BookRoom handles POST /v1/bookings.  It returns 200 with the booking
// result when a room was booked and 400 with a date error when every
// room is taken that day.
func (h *RoomBookingHandler) BookRoom(c echo.Context) error {
	var body bookRoomReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		if fields := fieldErrors(err); fields != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"errors": fields})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	date, _ := time.Parse(model.DateLayout, body.Date) // format checked by the datetime tag

	req := &model.RoomBookingRequest{FullName: body.FullName, Email: body.Email, Date: date}
	if err := req.Validate(h.Now()); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": echo.Map{"date": "Date must be in the future"}})
	}

	ctx := c.Request().Context()
	result, err := h.Processor.BookRoom(ctx, req)
	if err != nil {
		if errors.Is(err, processor.ErrInvalidArgument) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		h.Log.Error("book room failed", zap.String("date", body.Date), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if result.Flag != model.BookingSuccess {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": echo.Map{"date": "No rooms available for given date"}})
	}

	ev := queue.RoomBookedEvent{
		RoomBookingID: result.RoomBookingID,
		FullName:      result.FullName,
		Email:         result.Email,
		Date:          result.Date.Format(model.DateLayout),
		BookedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		h.publish(ev)
	}()

	return c.JSON(http.StatusOK, result)
}

// publish runs detached from the request; failures are only logged.
func (h *RoomBookingHandler) publish(ev queue.RoomBookedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Events.PublishRoomBooked(ctx, ev); err != nil {
		h.Log.Warn("publish room booked event failed", zap.String("date", ev.Date), zap.Error(err))
	}
}

// Wait blocks until every in-flight event publish has finished or ctx is
// done.  Call it after the server has stopped accepting requests.
func (h *RoomBookingHandler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ListRooms handles GET /v1/rooms.
func (h *RoomBookingHandler) ListRooms(c echo.Context) error {
	rooms, err := h.Rooms.ListRooms(c.Request().Context())
	if err != nil {
		h.Log.Error("list rooms failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, rooms)
}

// GetRoom handles GET /v1/rooms/:id.
func (h *RoomBookingHandler) GetRoom(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Rooms.GetRoomByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		h.Log.Error("get room failed", zap.Int("room_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, room)
}

// AvailableRooms handles GET /v1/rooms/available?date=YYYY-MM-DD.
func (h *RoomBookingHandler) AvailableRooms(c echo.Context) error {
	raw := c.QueryParam("date")
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required"})
	}
	date, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be in YYYY-MM-DD format"})
	}
	rooms, err := h.Rooms.GetAvailableRooms(c.Request().Context(), date)
	if err != nil {
		h.Log.Error("get available rooms failed", zap.String("date", raw), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"date": raw, "rooms": rooms})
}

// ListBookings handles GET /v1/bookings.
func (h *RoomBookingHandler) ListBookings(c echo.Context) error {
	bookings, err := h.Rooms.ListBookings(c.Request().Context())
	if err != nil {
		h.Log.Error("list bookings failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, bookings)
}
