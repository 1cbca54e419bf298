package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-booking/internal/handler"
)

// RegisterRoutes registers the unauthenticated operational endpoints.
// db is pinged by /readyz; pass nil when running on the in-memory store.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(db))
}

// RegisterBooking registers the room and booking endpoints under /v1.
// cache wraps the room list, which only changes when rooms are seeded;
// limit guards booking creation.
func RegisterBooking(e *echo.Echo, h *handler.RoomBookingHandler, cache, limit echo.MiddlewareFunc) {
	g := e.Group("/v1")

	g.GET("/rooms", h.ListRooms, cache)
	// static segment wins over :id in Echo's router
	g.GET("/rooms/available", h.AvailableRooms)
	g.GET("/rooms/:id", h.GetRoom)

	g.GET("/bookings", h.ListBookings)
	g.POST("/bookings", h.BookRoom, limit)
}
