package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"shareit/config"
	"shareit/infras/kafka"
	"shareit/infras/metrics"
	"shareit/infras/otel"
	"shareit/internal/domains/booking/access"
	"shareit/internal/domains/booking/classifier"
	"shareit/internal/domains/booking/model"
	"shareit/internal/domains/booking/model/dto"
	"shareit/internal/domains/booking/repository"
	itemModel "shareit/internal/domains/item/model"
	itemRepo "shareit/internal/domains/item/repository"
	userModel "shareit/internal/domains/user/model"
	userRepo "shareit/internal/domains/user/repository"
	"shareit/shared"
	"shareit/shared/constant"
	"shareit/shared/failure"
	gModel "shareit/shared/model"
	"shareit/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, bookerID string, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Decide(ctx context.Context, ownerID, bookingID string, approved bool) (dto.BookingResponse, error)
	Get(ctx context.Context, callerID, bookingID string) (dto.BookingResponse, error)
	List(ctx context.Context, req dto.ListRequest) (dto.GetBookingsResponse, error)
	Summarize(ctx context.Context, itemID string) (dto.Summary, error)
	SummarizeAt(ctx context.Context, itemID string, now time.Time) (dto.Summary, error)
	HasCompleted(ctx context.Context, itemID, bookerID string) (bool, error)
}

type serviceImpl struct {
	repo     repository.Booking
	userRepo userRepo.User
	itemRepo itemRepo.Item
	cfg      *config.Config
	kafka    kafka.Client
	metrics  metrics.Recorder
	otel     otel.Otel
	clock    timezone.Clock
}

func New(
	repo repository.Booking,
	userRepo userRepo.User,
	itemRepo itemRepo.Item,
	cfg *config.Config,
	kafka kafka.Client,
	metrics metrics.Recorder,
	otel otel.Otel,
) Booking {
	return NewWithClock(timezone.Now, repo, userRepo, itemRepo, cfg, kafka, metrics, otel)
}

// NewWithClock is New with an explicit source of "now".
func NewWithClock(
	clock timezone.Clock,
	repo repository.Booking,
	userRepo userRepo.User,
	itemRepo itemRepo.Item,
	cfg *config.Config,
	kafka kafka.Client,
	metrics metrics.Recorder,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		itemRepo: itemRepo,
		cfg:      cfg,
		kafka:    kafka,
		metrics:  metrics,
		otel:     otel,
		clock:    clock,
	}
}

func (s *serviceImpl) Create(ctx context.Context, bookerID string, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() { s.observeRejection(err) }()

	booker, err := s.lookupUser(ctx, bookerID)
	if err != nil {
		return res, err
	}

	start, end, err := req.Interval()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	item, err := s.lookupItem(ctx, req.ItemID)
	if err != nil {
		return res, err
	}

	if err = access.EnsureCanBook(bookerID, item); err != nil {
		return res, err // nolint:wrapcheck
	}

	if !item.Available {
		return res, failure.Unavailable(fmt.Sprintf("item %s is not available for booking", item.ID)) // nolint:wrapcheck
	}

	if !end.After(start) {
		return res, failure.InvalidInterval(fmt.Sprintf("end %s must be after start %s", // nolint:wrapcheck
			timezone.Format(end, constant.DateFormat), timezone.Format(start, constant.DateFormat)))
	}

	now := s.clock()
	if start.Before(now) {
		return res, failure.InvalidInterval(fmt.Sprintf("start %s must not be in the past", // nolint:wrapcheck
			timezone.Format(start, constant.DateFormat)))
	}

	booking := model.Booking{
		ID:         uuid.NewString(),
		ItemID:     item.ID,
		BookerID:   booker.ID,
		Start:      start,
		End:        end,
		Status:     model.InitialStatus,
		ItemName:   item.Name,
		OwnerID:    item.OwnerID,
		BookerName: booker.Name,
		Metadata:   gModel.NewMetadata(bookerID, now),
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Str("item_id", item.ID).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.metrics.BookingCreated(booking.Status.String())
	s.publish(ctx, dto.NewBookingEvent(dto.EventBookingCreated, booking, bookerID, now))

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Decide(ctx context.Context, ownerID, bookingID string, approved bool) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Decide")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() { s.observeRejection(err) }()

	if _, err = s.lookupUser(ctx, ownerID); err != nil {
		return res, err
	}

	target := model.Decision(approved)
	now := s.clock()

	booking, err := s.repo.Transition(ctx, bookingID, ownerID, now, func(current model.Booking) (model.Status, error) {
		if err := access.EnsureCanDecide(ownerID, current); err != nil {
			return current.Status, err // nolint:wrapcheck
		}

		if !current.Status.CanTransitionTo(target) {
			return current.Status, failure.InvalidState(fmt.Sprintf("booking %s already has status %s", current.ID, current.Status)) // nolint:wrapcheck
		}

		return target, nil
	})
	if err != nil {
		if failure.KindOf(err) == failure.KindInternal {
			log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to decide booking")

			return res, fmt.Errorf("failed to decide booking: %w", err)
		}

		return res, err // nolint:wrapcheck
	}

	s.metrics.OwnerDecision(booking.Status.String())
	s.publish(ctx, dto.NewBookingEvent(dto.EventBookingDecided, booking, ownerID, now))

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, callerID, bookingID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	// Status changes under a row lock in Transition, so Get always reads the store.
	booking, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFoundf(model.EntityName, bookingID) // nolint:wrapcheck
	}

	if err = access.EnsureCanView(callerID, booking); err != nil {
		return res, err // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context, req dto.ListRequest) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.lookupUser(ctx, req.SubjectID); err != nil {
		return res, err
	}

	category, err := model.ParseCategory(req.State)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	query, err := classifier.Build(req.SubjectID, req.Role, category, req.Page, req.Size, s.clock())
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	total, err := s.repo.Count(ctx, query.Filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, query.Params, query.Filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.PageRequest)

	return res, nil
}

func (s *serviceImpl) Summarize(ctx context.Context, itemID string) (dto.Summary, error) {
	return s.SummarizeAt(ctx, itemID, s.clock())
}

// SummarizeAt is never cached: last and next move with now.
func (s *serviceImpl) SummarizeAt(ctx context.Context, itemID string, now time.Time) (res dto.Summary, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summarize")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res.Last, err = s.repo.LastApproved(ctx, itemID, now)
	if err != nil {
		log.Error().Err(err).Str("item_id", itemID).Msg("failed to get last booking")

		return res, fmt.Errorf("failed to get last booking: %w", err)
	}

	res.Next, err = s.repo.NextApproved(ctx, itemID, now)
	if err != nil {
		log.Error().Err(err).Str("item_id", itemID).Msg("failed to get next booking")

		return res, fmt.Errorf("failed to get next booking: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) HasCompleted(ctx context.Context, itemID, bookerID string) (res bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HasCompleted")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.HasCompleted(ctx, itemID, bookerID, s.clock())
	if err != nil {
		log.Error().Err(err).Msg("failed to check completed booking")

		return false, fmt.Errorf("failed to check completed booking: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) lookupUser(ctx context.Context, id string) (userModel.User, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(id, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, failure.NotFoundf(userModel.EntityName, id) // nolint:wrapcheck
	}

	return user, nil
}

func (s *serviceImpl) lookupItem(ctx context.Context, id string) (itemModel.Item, error) {
	item, err := s.itemRepo.Get(ctx, shared.FilterByID(id, itemModel.FieldID, itemModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("item_id", id).Msg("failed to get item")

		return item, fmt.Errorf("failed to get item: %w", err)
	}

	if item.ID == constant.Empty {
		return item, failure.NotFoundf(itemModel.EntityName, id) // nolint:wrapcheck
	}

	return item, nil
}

// publish runs after the write has committed and never affects the caller.
func (s *serviceImpl) publish(ctx context.Context, event dto.BookingEvent) {
	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, kafka.Message{
			Key:   event.BookingID,
			Value: event,
		})
		if err != nil {
			log.Error().Err(err).Str("booking_id", event.BookingID).Str("type", event.Type).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) observeRejection(err error) {
	if err == nil {
		return
	}

	if kind := failure.KindOf(err); kind != failure.KindInternal {
		s.metrics.RequestRejected(string(kind))
	}
}
