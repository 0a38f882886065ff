//go:build wireinject
// +build wireinject

package di

import (
	"shareit/config"
	"shareit/infras/jwt"
	"shareit/infras/kafka"
	"shareit/infras/metrics"
	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/infras/redis"
	"shareit/permissions"
	"shareit/shared/cache"
	"shareit/transport/http"
	"shareit/transport/http/middleware"
	"shareit/transport/http/router"

	bookingRepository "shareit/internal/domains/booking/repository"
	bookingService "shareit/internal/domains/booking/service"
	itemRepository "shareit/internal/domains/item/repository"
	itemService "shareit/internal/domains/item/service"
	userRepository "shareit/internal/domains/user/repository"

	"github.com/google/wire"

	bookingHandler "shareit/internal/handlers/booking"
	itemHandler "shareit/internal/handlers/item"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	metrics.NewRecorder,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
)

var itemDomain = wire.NewSet(
	itemRepository.New,
	itemService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	userDomain,
	itemDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	itemHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		NewServer,
	)

	return &http.HTTP{}
}
