package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/technest-labs/storefront-backend/api/controllers"
	"github.com/technest-labs/storefront-backend/api/middleware"
	adminsvc "github.com/technest-labs/storefront-backend/internal/admin"
	cartsvc "github.com/technest-labs/storefront-backend/internal/cart"
	checkoutsvc "github.com/technest-labs/storefront-backend/internal/checkout"
	orderssvc "github.com/technest-labs/storefront-backend/internal/orders"
	productssvc "github.com/technest-labs/storefront-backend/internal/products"
	userssvc "github.com/technest-labs/storefront-backend/internal/users"
	wishlistsvc "github.com/technest-labs/storefront-backend/internal/wishlist"
	"github.com/technest-labs/storefront-backend/pkg/config"
	"github.com/technest-labs/storefront-backend/pkg/db"
	"github.com/technest-labs/storefront-backend/pkg/logger"
	"github.com/technest-labs/storefront-backend/pkg/metrics"
	"github.com/technest-labs/storefront-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *db.Client
	Redis       *redis.Client
	TokenParser middleware.TokenParser
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry

	Users    userssvc.Service
	Products productssvc.Service
	Wishlist wishlistsvc.Service
	Cart     cartsvc.Service
	Checkout checkoutsvc.Service
	Orders   orderssvc.Service
	Admin    adminsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.LoginPolicy(cfg.AuthRateLimit)
	registerPolicy := middleware.RegisterPolicy(cfg.AuthRateLimit)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.Register(deps.Users, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.Login(deps.Users, logg))
	})

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AdminLogin(deps.Users, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(deps.Products, logg))
		r.Get("/{productID}", controllers.ProductDetail(deps.Products, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(deps.TokenParser, logg))

		r.Get("/me", controllers.Profile(deps.Users, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.Cart, logg))
			r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
			r.Patch("/items", controllers.CartUpdateQuantity(deps.Cart, logg))
			r.Delete("/items/{productID}", controllers.CartRemoveItem(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistGet(deps.Wishlist, logg))
			r.Post("/toggle", controllers.WishlistToggle(deps.Wishlist, logg))
			r.Delete("/{productID}", controllers.WishlistRemove(deps.Wishlist, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/preview", controllers.CheckoutPreview(deps.Checkout, logg))
			r.Post("/", controllers.CheckoutSubmit(deps.Checkout, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderHistory(deps.Orders, logg))
			r.Get("/{orderNumber}", controllers.OrderDetail(deps.Orders, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(deps.TokenParser, logg))
		r.Use(middleware.RequireAdmin(logg))

		r.Get("/dashboard", controllers.AdminDashboard(deps.Admin, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Products, logg))
			r.Post("/", controllers.AdminProductCreate(deps.Products, logg))
			r.Patch("/{productID}", controllers.AdminProductUpdate(deps.Products, logg))
			r.Delete("/{productID}", controllers.AdminProductDelete(deps.Products, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(deps.Orders, logg))
			r.Get("/{orderID}", controllers.AdminOrderDetail(deps.Orders, logg))
			r.Patch("/{orderID}/status", controllers.AdminOrderUpdateStatus(deps.Orders, logg))
		})
	})

	return r
}
