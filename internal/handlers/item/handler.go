package item

import (
	"net/http"
	"shareit/config"
	"shareit/infras/otel"
	"shareit/internal/domains/item/service"
	"shareit/internal/handlers/booking"
	"shareit/shared"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Item
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Item, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/items", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetOwnerItems)
		routerGroup.Get("/{id}", handler.GetItemByID)
		routerGroup.Get("/{id}/summary", handler.GetItemSummary)
		routerGroup.Get("/{id}/bookings/completed", handler.GetCompleted)
	})
}

// GetOwnerItems lists the caller's items with their last and next bookings.
// @Summary List the caller's items
// @Tags Item
// @Produce json
// @Param page query int false "Zero-based page"
// @Param from query int false "Row offset, alternative to page"
// @Param size query int false "Page size"
// @Success 200 {object} response.Data[dto.GetItemsResponse] "Items"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/items [get]
// @Security BearerAuth
func (handler *Handler) GetOwnerItems(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnerItems")
	defer scope.End()

	userID := shared.UserIDFromContext(ctx)
	if userID == constant.Empty {
		response.WithError(writer, failure.Unauthorized("missing caller identity"))

		return
	}

	page, err := booking.PageRequestFromQuery(request, handler.cfg)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	items, err := handler.service.GetByOwner(ctx, userID, page)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get owner items")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, items)
}

// GetItemByID returns an item. The owner also sees its last and next bookings.
// @Summary Get an item by ID
// @Tags Item
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Data[dto.ItemResponse] "Item details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/items/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetItemByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItemByID")
	defer scope.End()

	userID := shared.UserIDFromContext(ctx)
	if userID == constant.Empty {
		response.WithError(writer, failure.Unauthorized("missing caller identity"))

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	item, err := handler.service.Get(ctx, userID, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("item_id", id).Msg("failed to get item by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, item)
}

// GetItemSummary returns the item's last and next approved bookings.
// @Summary Get an item's booking summary
// @Tags Item
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Data[bookingDto.SummaryResponse] "Summary"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/items/{id}/summary [get]
// @Security BearerAuth
func (handler *Handler) GetItemSummary(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItemSummary")
	defer scope.End()

	userID := shared.UserIDFromContext(ctx)
	if userID == constant.Empty {
		response.WithError(writer, failure.Unauthorized("missing caller identity"))

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	summary, err := handler.service.Summary(ctx, userID, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("item_id", id).Msg("failed to get item summary")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, summary)
}

// GetCompleted reports whether the caller has finished an approved booking of the item.
// @Summary Check for a completed booking
// @Tags Item
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Data[bookingDto.CompletedResponse] "Completion flag"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/items/{id}/bookings/completed [get]
// @Security BearerAuth
func (handler *Handler) GetCompleted(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCompleted")
	defer scope.End()

	userID := shared.UserIDFromContext(ctx)
	if userID == constant.Empty {
		response.WithError(writer, failure.Unauthorized("missing caller identity"))

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	completed, err := handler.service.Completed(ctx, userID, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("item_id", id).Msg("failed to check completed booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, completed)
}
