package item_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"shareit/config"
	"shareit/infras/otel/mocks"
	bookingDto "shareit/internal/domains/booking/model/dto"
	"shareit/internal/domains/item/model/dto"
	serviceMocks "shareit/internal/domains/item/service/mocks"
	"shareit/internal/handlers/item"
	"shareit/shared/constant"
	"shareit/shared/failure"
)

func setup(t *testing.T) (*serviceMocks.MockItem, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := serviceMocks.NewMockItem(ctrl)

	cfg := &config.Config{}
	cfg.Booking.DefaultPageSize = 10

	handler := item.New(svc, cfg, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func get(h http.Handler, target, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != "" {
		req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeyUserID, userID))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestGetItemByID(t *testing.T) {
	svc, h := setup(t)
	svc.EXPECT().Get(gomock.Any(), "owner", "i-1").Return(dto.ItemResponse{
		ID:          "i-1",
		LastBooking: &bookingDto.BookingShortResponse{ID: "B2"},
	}, nil)

	rec := get(h, "/items/i-1", "owner")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data dto.ItemResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "B2", body.Data.LastBooking.ID)
	assert.Nil(t, body.Data.NextBooking)
}

func TestGetOwnerItems(t *testing.T) {
	t.Run("from offset", func(t *testing.T) {
		svc, h := setup(t)
		svc.EXPECT().GetByOwner(gomock.Any(), "owner", bookingDto.PageRequest{Page: 1, Size: 5}).Return(dto.GetItemsResponse{}, nil)

		rec := get(h, "/items?from=5&size=5", "owner")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, h := setup(t)

		rec := get(h, "/items", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetItemSummary(t *testing.T) {
	svc, h := setup(t)
	svc.EXPECT().Summary(gomock.Any(), "booker", "i-1").Return(bookingDto.SummaryResponse{}, failure.AccessDenied("denied"))

	rec := get(h, "/items/i-1/summary", "booker")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetCompleted(t *testing.T) {
	svc, h := setup(t)
	svc.EXPECT().Completed(gomock.Any(), "booker", "i-1").Return(bookingDto.CompletedResponse{ItemID: "i-1", Completed: true}, nil)

	rec := get(h, "/items/i-1/bookings/completed", "booker")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"item_id":"i-1","completed":true}}`, rec.Body.String())
}
