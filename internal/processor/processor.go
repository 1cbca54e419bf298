// Package processor turns a booking request into a persisted room
// booking.  It owns the single decision of the booking flow: take the
// first room the store reports as free on the requested day, or report
// failure when there is none.
package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/model"
)

// ErrInvalidArgument is matched by errors.Is for every
// *InvalidArgumentError.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports a missing or unusable argument.  It is a
// programming error on the caller's side and must not be retried.
type InvalidArgumentError struct {
	Param string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s must not be nil", e.Param)
}

func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// RoomBookingService is the store the processor depends on.
type RoomBookingService interface {
	GetAvailableRooms(ctx context.Context, date time.Time) ([]model.Room, error)
	Save(ctx context.Context, booking *model.RoomBooking) error
}

// RoomBookingRequestProcessor books rooms on behalf of requests.
type RoomBookingRequestProcessor struct {
	service RoomBookingService
	log     *zap.Logger
}

// NewRoomBookingRequestProcessor panics when service is nil.  A nil
// logger is replaced by a no-op logger.
func NewRoomBookingRequestProcessor(service RoomBookingService, log *zap.Logger) *RoomBookingRequestProcessor {
	if service == nil {
		panic("nil service passed to NewRoomBookingRequestProcessor")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RoomBookingRequestProcessor{service: service, log: log}
}

// BookRoom looks up the rooms free on request.Date and books the first
// one.  When no room is free the result carries BookingFailure and the
// store is not written to.  Store errors are returned unchanged.
func (p *RoomBookingRequestProcessor) BookRoom(ctx context.Context, request *model.RoomBookingRequest) (*model.BookRoomResult, error) {
	if request == nil {
		return nil, &InvalidArgumentError{Param: "request"}
	}

	availableRooms, err := p.service.GetAvailableRooms(ctx, request.Date)
	if err != nil {
		return nil, err
	}

	result := &model.BookRoomResult{
		FullName: request.FullName,
		Email:    request.Email,
		Date:     request.Date,
	}

	if len(availableRooms) == 0 {
		result.Flag = model.BookingFailure
		p.log.Debug("no room available",
			zap.String("date", request.Date.Format(model.DateLayout)))
		return result, nil
	}

	room := availableRooms[0]
	booking := &model.RoomBooking{
		FullName: request.FullName,
		Email:    request.Email,
		Date:     request.Date,
		RoomID:   room.ID,
	}
	if err := p.service.Save(ctx, booking); err != nil {
		return nil, err
	}

	result.RoomBookingID = booking.ID
	result.Flag = model.BookingSuccess
	p.log.Debug("room booked",
		zap.Int("room_id", room.ID),
		zap.String("date", request.Date.Format(model.DateLayout)))
	return result, nil
}
