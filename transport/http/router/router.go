package router

//nolint:revive
import (
	"net/http"
	"shareit/config"
	_ "shareit/docs"
	"shareit/infras/metrics"
	"shareit/internal/handlers/booking"
	"shareit/internal/handlers/item"
	"shareit/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Booking booking.Handler
	Item    item.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	AuthRole       middleware.AuthRole
	Metrics        metrics.Recorder
	Config         *config.Config
}

// SetupRoutes registers middlewares first; chi refuses Use after a route exists.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID, chiMiddleware.Recoverer)

	if cfg := r.Config.App.CORS; cfg.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   cfg.AllowedMethods,
			AllowedHeaders:   cfg.AllowedHeaders,
			AllowCredentials: cfg.AllowCredentials,
			MaxAge:           cfg.MaxAgeSeconds,
		}))
	}

	router.Use(r.App.Tracing, r.App.RateLimit())

	router.Method(http.MethodGet, "/metrics", r.Metrics.Handler())
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Item.Router(routerGroup)
	})
}

func New(
	cfg *config.Config,
	domainHandlers DomainHandlers,
	app middleware.AppMiddleware,
	authRole middleware.AuthRole,
	recorder metrics.Recorder,
) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		AuthRole:       authRole,
		Metrics:        recorder,
		Config:         cfg,
	}
}
