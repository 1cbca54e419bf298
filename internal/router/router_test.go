package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-booking/internal/handler"
	"github.com/iliyamo/room-booking/internal/model"
	"github.com/iliyamo/room-booking/internal/processor"
	"github.com/iliyamo/room-booking/internal/repository"
)

func tagging(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Add("X-Middleware", name)
			return next(c)
		}
	}
}

func TestRoutes(t *testing.T) {
	store := repository.NewMemoryStore(model.Room{ID: 1, Name: "Conference Room A"})
	h := handler.NewRoomBookingHandler(processor.NewRoomBookingRequestProcessor(store, nil), store, nil, nil)
	h.Now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	e := echo.New()
	e.Validator = handler.NewRequestValidator()
	RegisterRoutes(e, nil)
	RegisterBooking(e, h, tagging("cache"), tagging("limit"))

	cases := []struct {
		method, path, body string
		code               int
		middleware         string
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK, ""},
		{http.MethodGet, "/readyz", "", http.StatusOK, ""},
		{http.MethodGet, "/v1/rooms", "", http.StatusOK, "cache"},
		{http.MethodGet, "/v1/rooms/available?date=2024-06-09", "", http.StatusOK, ""},
		{http.MethodGet, "/v1/rooms/1", "", http.StatusOK, ""},
		{http.MethodGet, "/v1/bookings", "", http.StatusOK, ""},
		{http.MethodPost, "/v1/bookings", `{"fullName":"A","email":"a@b.io","date":"2024-06-09"}`, http.StatusOK, "limit"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, tc.code, rec.Code, "%s %s: %s", tc.method, tc.path, rec.Body.String())
		assert.Equal(t, tc.middleware, rec.Header().Get("X-Middleware"), tc.path)
	}
}
