package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-booking/internal/model"
)

// MockRoomBookingService is a testify mock of RoomBookingService.
type MockRoomBookingService struct {
	mock.Mock
}

func (m *MockRoomBookingService) GetAvailableRooms(ctx context.Context, date time.Time) ([]model.Room, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Room), args.Error(1)
}

func (m *MockRoomBookingService) Save(ctx context.Context, booking *model.RoomBooking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func newRequest() *model.RoomBookingRequest {
	return &model.RoomBookingRequest{
		FullName: "Test name",
		Email:    "test@request.com",
		Date:     time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC),
	}
}

func setupProcessor(available []model.Room) (*RoomBookingRequestProcessor, *MockRoomBookingService, *model.RoomBookingRequest) {
	req := newRequest()
	svc := new(MockRoomBookingService)
	svc.On("GetAvailableRooms", mock.Anything, req.Date).Return(available, nil)
	return NewRoomBookingRequestProcessor(svc, nil), svc, req
}

func TestBookRoom_ReturnsRequestDetails(t *testing.T) {
	p, svc, req := setupProcessor([]model.Room{{ID: 1}})
	svc.On("Save", mock.Anything, mock.Anything).Return(nil)

	result, err := p.BookRoom(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, req.FullName, result.FullName)
	assert.Equal(t, req.Email, result.Email)
	assert.Equal(t, req.Date, result.Date)

	rec := result.ToRecord()
	assert.Equal(t, model.RoomBookingRecord{FullName: req.FullName, Email: req.Email, Date: req.Date}, rec)
}

func TestBookRoom_EchoesRequestOnFailure(t *testing.T) {
	p, _, req := setupProcessor([]model.Room{})

	result, err := p.BookRoom(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, req.FullName, result.FullName)
	assert.Equal(t, req.Email, result.Email)
	assert.Equal(t, req.Date, result.Date)
}

func TestBookRoom_NilRequest(t *testing.T) {
	p, svc, _ := setupProcessor(nil)

	result, err := p.BookRoom(context.Background(), nil)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	var argErr *InvalidArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "request", argErr.Param)
	svc.AssertNotCalled(t, "GetAvailableRooms", mock.Anything, mock.Anything)
}

func TestBookRoom_SavesBooking(t *testing.T) {
	available := []model.Room{{ID: 1}, {ID: 2}}
	p, svc, req := setupProcessor(available)

	var saved *model.RoomBooking
	svc.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*model.RoomBooking)
	}).Return(nil)

	_, err := p.BookRoom(context.Background(), req)

	require.NoError(t, err)
	svc.AssertNumberOfCalls(t, "Save", 1)
	require.NotNil(t, saved)
	assert.Equal(t, req.FullName, saved.FullName)
	assert.Equal(t, req.Email, saved.Email)
	assert.Equal(t, req.Date, saved.Date)
	assert.Equal(t, available[0].ID, saved.RoomID)
}

func TestBookRoom_DoesNotSaveWhenNoneAvailable(t *testing.T) {
	p, svc, req := setupProcessor([]model.Room{})

	_, err := p.BookRoom(context.Background(), req)

	require.NoError(t, err)
	svc.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBookRoom_ResultFlag(t *testing.T) {
	cases := []struct {
		name      string
		available bool
		want      model.BookingResultFlag
	}{
		{"failure when none available", false, model.BookingFailure},
		{"success when available", true, model.BookingSuccess},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rooms := []model.Room{}
			if tc.available {
				rooms = append(rooms, model.Room{ID: 1})
			}
			p, svc, req := setupProcessor(rooms)
			svc.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()

			result, err := p.BookRoom(context.Background(), req)

			require.NoError(t, err)
			assert.Equal(t, tc.want, result.Flag)
		})
	}
}

func TestBookRoom_RoomBookingIDInResult(t *testing.T) {
	one := 1
	cases := []struct {
		name      string
		assigned  *int
		available bool
	}{
		{"store assigns id", &one, true},
		{"store assigns nothing", nil, true},
		{"no room available", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rooms := []model.Room{}
			if tc.available {
				rooms = append(rooms, model.Room{ID: 1})
			}
			p, svc, req := setupProcessor(rooms)
			svc.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
				args.Get(1).(*model.RoomBooking).ID = tc.assigned
			}).Return(nil).Maybe()

			result, err := p.BookRoom(context.Background(), req)

			require.NoError(t, err)
			assert.Equal(t, tc.assigned, result.RoomBookingID)
		})
	}
}

func TestBookRoom_PropagatesLookupError(t *testing.T) {
	req := newRequest()
	boom := errors.New("db down")
	svc := new(MockRoomBookingService)
	svc.On("GetAvailableRooms", mock.Anything, req.Date).Return(nil, boom)
	p := NewRoomBookingRequestProcessor(svc, nil)

	result, err := p.BookRoom(context.Background(), req)

	assert.Nil(t, result)
	assert.Same(t, boom, err)
	svc.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBookRoom_PropagatesSaveError(t *testing.T) {
	p, svc, req := setupProcessor([]model.Room{{ID: 3}})
	boom := errors.New("insert failed")
	svc.On("Save", mock.Anything, mock.Anything).Return(boom)

	result, err := p.BookRoom(context.Background(), req)

	assert.Nil(t, result)
	assert.Same(t, boom, err)
	svc.AssertNumberOfCalls(t, "Save", 1)
}

func TestNewRoomBookingRequestProcessor_PanicsOnNilService(t *testing.T) {
	assert.Panics(t, func() { NewRoomBookingRequestProcessor(nil, nil) })
}
