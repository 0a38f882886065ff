package booking

import (
	"fmt"
	"net/http"
	"shareit/config"
	"shareit/infras/otel"
	"shareit/internal/domains/booking/model"
	"shareit/internal/domains/booking/model/dto"
	"shareit/internal/domains/booking/service"
	"shareit/shared"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"shareit/shared/validator"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Booking, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookerBookings)
		routerGroup.Get("/owner", handler.GetOwnerBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.DecideBooking)
	})
}

// CreateBooking handles a booking request from the caller.
// @Summary Request a booking
// @Description Create a WAITING booking of an item for the authenticated caller.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	userID := shared.UserIDFromContext(ctx)
	if userID == constant.Empty {
		response.WithError(writer, failure.Unauthorized("missing caller identity"))

		return
	}

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, userID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully by user " + userID)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// DecideBooking lets the item owner approve or reject a waiting booking.
// @Summary Approve or reject a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Param approved query boolean true "Approve (true) or reject (false)"
// @Success 200 {object} response.Data[dto.BookingResponse] "Decided booking"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) DecideBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DecideBooking")
	defer scope.End()

	userID := shared.UserIDFromContext(ctx)
	if userID == constant.Empty {
		response.WithError(writer, failure.Unauthorized("missing caller identity"))

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	approved := shared.ConvertStringToBool(request.URL.Query().Get(constant.RequestParamApproved))
	if approved == nil {
		response.WithError(writer, failure.BadRequestFromString("approved must be true or false"))

		return
	}

	booking, err := handler.service.Decide(ctx, userID, id, *approved)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to decide booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking " + id + " decided: " + booking.Status)

	response.WithJSON(writer, http.StatusOK, booking)
}

// GetBookingByID returns a booking to its booker or the item owner.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	userID := shared.UserIDFromContext(ctx)
	if userID == constant.Empty {
		response.WithError(writer, failure.Unauthorized("missing caller identity"))

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, userID, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}

// GetBookerBookings lists the caller's own bookings.
// @Summary List bookings made by the caller
// @Tags Booking
// @Produce json
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Param page query int false "Zero-based page"
// @Param from query int false "Row offset, alternative to page"
// @Param size query int false "Page size"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "Bookings"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookerBookings(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, model.RoleBooker)
}

// GetOwnerBookings lists bookings of items the caller owns.
// @Summary List bookings of the caller's items
// @Tags Booking
// @Produce json
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Param page query int false "Zero-based page"
// @Param from query int false "Row offset, alternative to page"
// @Param size query int false "Page size"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "Bookings"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/owner [get]
// @Security BearerAuth
func (handler *Handler) GetOwnerBookings(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, model.RoleOwner)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request, role model.Role) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	userID := shared.UserIDFromContext(ctx)
	if userID == constant.Empty {
		response.WithError(writer, failure.Unauthorized("missing caller identity"))

		return
	}

	page, err := PageRequestFromQuery(request, handler.cfg)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	state := request.URL.Query().Get(constant.RequestParamState)
	if state == constant.Empty {
		state = string(model.CategoryAll)
	}

	scope.SetAttributes(map[string]any{
		"booking.role":  string(role),
		"booking.state": state,
	})

	bookings, err := handler.service.List(ctx, dto.ListRequest{
		SubjectID:   userID,
		Role:        role,
		State:       state,
		PageRequest: page,
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("role", string(role)).Msg("failed to list bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

// PageRequestFromQuery reads page or from, and size. from wins when both are present.
func PageRequestFromQuery(request *http.Request, cfg *config.Config) (dto.PageRequest, error) {
	query := request.URL.Query()

	size, err := shared.ConvertStringToInt(query.Get(constant.RequestParamSize), cfg.Booking.DefaultPageSize)
	if err != nil {
		return dto.PageRequest{}, failure.InvalidPagination(err.Error()) // nolint:wrapcheck
	}

	if cfg.Booking.MaxPageSize > 0 && size > cfg.Booking.MaxPageSize {
		return dto.PageRequest{}, failure.InvalidPagination(fmt.Sprintf("size must not exceed %d, got %d", cfg.Booking.MaxPageSize, size)) // nolint:wrapcheck
	}

	if from := query.Get(constant.RequestParamFrom); from != constant.Empty {
		offset, err := shared.ConvertStringToInt(from, 0)
		if err != nil {
			return dto.PageRequest{}, failure.InvalidPagination(err.Error()) // nolint:wrapcheck
		}

		return dto.FromOffset(offset, size), nil
	}

	page, err := shared.ConvertStringToInt(query.Get(constant.RequestParamPage), 0)
	if err != nil {
		return dto.PageRequest{}, failure.InvalidPagination(err.Error()) // nolint:wrapcheck
	}

	return dto.PageRequest{Page: page, Size: size}, nil
}
