package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/slicehaus/slicehaus-backend/api/controllers"
	"github.com/slicehaus/slicehaus-backend/api/middleware"
	authsvc "github.com/slicehaus/slicehaus-backend/internal/auth"
	cartsvc "github.com/slicehaus/slicehaus-backend/internal/cart"
	"github.com/slicehaus/slicehaus-backend/internal/catalog"
	ordersvc "github.com/slicehaus/slicehaus-backend/internal/orders"
	"github.com/slicehaus/slicehaus-backend/pkg/config"
	"github.com/slicehaus/slicehaus-backend/pkg/logger"
	"github.com/slicehaus/slicehaus-backend/pkg/observe"
)

// Deps bundles everything the router wires together.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Catalog *catalog.Catalog
	Carts   *cartsvc.Service
	Orders  *ordersvc.Service
	Auth    authsvc.Service
	Monitor *observe.Monitor
	Pingers map[string]controllers.Pinger
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Pingers))
		r.Get("/metrics", controllers.HealthMetrics(cfg, deps.Monitor))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/menu", controllers.Menu(deps.Catalog))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartSession(logg))
			r.Get("/", controllers.CartGet(deps.Carts, logg))
			r.Delete("/", controllers.CartClear(deps.Carts, logg))
			r.Post("/items", controllers.CartAddItem(deps.Carts, logg))
			r.Patch("/items/{itemID}", controllers.CartUpdateItem(deps.Carts, logg))
			r.Delete("/items/{itemID}", controllers.CartRemoveItem(deps.Carts, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(
				middleware.OptionalAuth(cfg.JWT, logg),
				middleware.CartSession(logg),
			).Post("/", controllers.OrderCreate(deps.Orders, deps.Carts, logg))
			r.Get("/{orderID}", controllers.OrderGet(deps.Orders, logg))
			r.With(middleware.Auth(cfg.JWT, logg)).
				Get("/user/{userID}", controllers.OrderHistory(deps.Orders, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.AuthRegister(deps.Auth, logg))
			r.Post("/login", controllers.AuthLogin(deps.Auth, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, logg))
				r.Get("/me", controllers.AuthMe(deps.Auth, logg))
				r.Patch("/profile", controllers.AuthUpdateProfile(deps.Auth, logg))
			})
		})
	})

	return r
}
