package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"shareit/config"
	"shareit/infras/otel"
	"shareit/internal/domains/booking/access"
	bookingDto "shareit/internal/domains/booking/model/dto"
	bookingService "shareit/internal/domains/booking/service"
	"shareit/internal/domains/item/model"
	"shareit/internal/domains/item/model/dto"
	"shareit/internal/domains/item/repository"
	userModel "shareit/internal/domains/user/model"
	userRepo "shareit/internal/domains/user/repository"
	"shareit/shared"
	"shareit/shared/cache"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetItem      = "item:get"
	cacheGetOwnerPage = "item:owner"

	sortColumn = model.TableName + "." + model.FieldID
)

// Item is the owner-facing view over the catalog: item details enriched with booking summaries.
type Item interface {
	Get(ctx context.Context, callerID, itemID string) (dto.ItemResponse, error)
	GetByOwner(ctx context.Context, ownerID string, page bookingDto.PageRequest) (dto.GetItemsResponse, error)
	Summary(ctx context.Context, callerID, itemID string) (bookingDto.SummaryResponse, error)
	Completed(ctx context.Context, callerID, itemID string) (bookingDto.CompletedResponse, error)
}

type serviceImpl struct {
	repo     repository.Item
	userRepo userRepo.User
	bookings bookingService.Booking
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	repo repository.Item,
	userRepo userRepo.User,
	bookings bookingService.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Item {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		bookings: bookings,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, callerID, itemID string) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetItem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureUser(ctx, callerID); err != nil {
		return res, err
	}

	item, err := s.lookup(ctx, itemID)
	if err != nil {
		return res, err
	}

	res.FromModel(item)

	if !access.IsOwner(callerID, item) {
		return res, nil
	}

	summary, err := s.bookings.Summarize(ctx, item.ID)
	if err != nil {
		return res, fmt.Errorf("failed to summarize item bookings: %w", err)
	}

	res.WithSummary(summary)

	return res, nil
}

func (s *serviceImpl) GetByOwner(ctx context.Context, ownerID string, page bookingDto.PageRequest) (res dto.GetItemsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetItemsByOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureUser(ctx, ownerID); err != nil {
		return res, err
	}

	if err = page.Validate(); err != nil {
		return res, err // nolint:wrapcheck
	}

	filter := shared.FilterByID(ownerID, model.FieldOwnerID, model.TableName)
	params := page.Params(sortColumn, gDto.SortDirAsc)

	cached, err := s.ownerPage(ctx, params, filter)
	if err != nil {
		return res, err
	}

	res.FromModels(cached.Items, cached.Total, page)

	for i := range res.Items {
		summary, err := s.bookings.Summarize(ctx, res.Items[i].ID)
		if err != nil {
			return res, fmt.Errorf("failed to summarize item bookings: %w", err)
		}

		res.Items[i].WithSummary(summary)
	}

	return res, nil
}

func (s *serviceImpl) Summary(ctx context.Context, callerID, itemID string) (res bookingDto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ItemSummary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	item, err := s.lookup(ctx, itemID)
	if err != nil {
		return res, err
	}

	if err = access.EnsureOwner(callerID, item); err != nil {
		return res, err // nolint:wrapcheck
	}

	summary, err := s.bookings.Summarize(ctx, item.ID)
	if err != nil {
		return res, fmt.Errorf("failed to summarize item bookings: %w", err)
	}

	res.FromSummary(summary)

	return res, nil
}

func (s *serviceImpl) Completed(ctx context.Context, callerID, itemID string) (res bookingDto.CompletedResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Completed")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureUser(ctx, callerID); err != nil {
		return res, err
	}

	item, err := s.lookup(ctx, itemID)
	if err != nil {
		return res, err
	}

	completed, err := s.bookings.HasCompleted(ctx, item.ID, callerID)
	if err != nil {
		return res, fmt.Errorf("failed to check completed booking: %w", err)
	}

	res.ItemID = item.ID
	res.Completed = completed

	return res, nil
}

// itemPage is the cached unit for an owner's listing. Summaries are attached after, never cached.
type itemPage struct {
	Items []model.Item `json:"items"`
	Total int          `json:"total"`
}

func (s *serviceImpl) ownerPage(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res itemPage, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetOwnerPage, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for owner items")

		return res, nil
	}

	res.Total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count items")

		return res, fmt.Errorf("failed to count items: %w", err)
	}

	res.Items, err = s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get items")

		return res, fmt.Errorf("failed to get items: %w", err)
	}

	go func(p itemPage) {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, p, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save owner items to cache")
		}
	}(res)

	return res, nil
}

func (s *serviceImpl) ensureUser(ctx context.Context, id string) error {
	exist, err := s.userRepo.Exist(ctx, shared.FilterByID(id, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to check user")

		return fmt.Errorf("failed to check user: %w", err)
	}

	if !exist {
		return failure.NotFoundf(userModel.EntityName, id) // nolint:wrapcheck
	}

	return nil
}

// lookup reads the item through the cache. Items change outside this service, so entries only expire.
func (s *serviceImpl) lookup(ctx context.Context, itemID string) (item model.Item, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetItem, itemID)

	if err = s.cache.Get(ctx, cacheKey, &item); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for item")

		return item, nil
	}

	item, err = s.repo.Get(ctx, shared.FilterByID(itemID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("item_id", itemID).Msg("failed to get item")

		return item, fmt.Errorf("failed to get item: %w", err)
	}

	if item.ID == constant.Empty {
		return item, failure.NotFoundf(model.EntityName, itemID) // nolint:wrapcheck
	}

	go func(i model.Item) {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, i, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save item to cache")
		}
	}(item)

	return item, nil
}
