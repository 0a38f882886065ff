package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"shareit/config"
	"shareit/infras/jwt"
	"shareit/infras/metrics"
	"shareit/infras/otel/mocks"
	"shareit/internal/domains/booking/model/dto"
	bookingMocks "shareit/internal/domains/booking/service/mocks"
	itemMocks "shareit/internal/domains/item/service/mocks"
	bookingHandler "shareit/internal/handlers/booking"
	itemHandler "shareit/internal/handlers/item"
	"shareit/permissions"
	cacheMocks "shareit/shared/cache/mocks"
	"shareit/shared/constant"
	transport "shareit/transport/http"
	"shareit/transport/http/middleware"
	"shareit/transport/http/router"
)

type server struct {
	bookings *bookingMocks.MockBooking
	jwt      jwt.JWT
	handler  http.Handler
}

func newServer(t *testing.T) *server {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.App.Name = "shareit"
	cfg.App.APIKey = "gateway-key"
	cfg.JWT.AccessSecret = "secret"
	cfg.JWT.AccessExpireMin = 5
	cfg.Booking.DefaultPageSize = 10
	cfg.Booking.MaxPageSize = 50

	ot := mocks.NewOtel()
	bookings := bookingMocks.NewMockBooking(ctrl)
	jwtService := jwt.New(cfg)

	r := router.New(
		cfg,
		router.DomainHandlers{
			Booking: bookingHandler.New(bookings, cfg, ot),
			Item:    itemHandler.New(itemMocks.NewMockItem(ctrl), cfg, ot),
		},
		middleware.NewAppMiddleware(ot, cfg, cacheMocks.NewMockRedisCache(ctrl)),
		middleware.NewAuthRoleMiddleware(jwtService, ot, permissions.Get(), cfg),
		metrics.New().Register(),
	)

	return &server{
		bookings: bookings,
		jwt:      jwtService,
		handler:  transport.New(cfg, r),
	}
}

func (s *server) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	return rec
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth_GracePeriod(t *testing.T) {
	s := newServer(t)
	srv := s.handler.(*transport.HTTP)

	s.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	srv.SetState(transport.ServerStateInGracePeriod)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), constant.ResponseErrorPrepareShutdown)
}

func TestMetrics(t *testing.T) {
	s := newServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestBookingRoutes_RequireIdentity(t *testing.T) {
	s := newServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/v1/bookings/b-1", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBookingRoutes_BearerToken(t *testing.T) {
	s := newServer(t)

	token, err := s.jwt.Issue("u-1", "u1@example.com", constant.RoleUser)
	require.NoError(t, err)

	s.bookings.EXPECT().Get(gomock.Any(), "u-1", "b-1").Return(dto.BookingResponse{ID: "b-1"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/b-1", nil)
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)

	rec := s.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(constant.RequestHeaderContentType))
}

func TestBookingRoutes_InvalidToken(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/b-1", nil)
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer not-a-token")

	rec := s.do(req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBookingRoutes_TrustedGateway(t *testing.T) {
	t.Run("user header", func(t *testing.T) {
		s := newServer(t)
		s.bookings.EXPECT().Get(gomock.Any(), "u-7", "b-1").Return(dto.BookingResponse{ID: "b-1"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/bookings/b-1", nil)
		req.Header.Set(constant.RequestHeaderAPIKey, "gateway-key")
		req.Header.Set(constant.RequestHeaderSharerUserID, "u-7")

		rec := s.do(req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing user header", func(t *testing.T) {
		s := newServer(t)

		req := httptest.NewRequest(http.MethodGet, "/v1/bookings/b-1", nil)
		req.Header.Set(constant.RequestHeaderAPIKey, "gateway-key")

		rec := s.do(req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong key", func(t *testing.T) {
		s := newServer(t)

		req := httptest.NewRequest(http.MethodGet, "/v1/bookings/b-1", nil)
		req.Header.Set(constant.RequestHeaderAPIKey, "guess")
		req.Header.Set(constant.RequestHeaderSharerUserID, "u-7")

		rec := s.do(req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
