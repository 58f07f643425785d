package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/technest-labs/storefront-backend/api/routes"
	adminsvc "github.com/technest-labs/storefront-backend/internal/admin"
	cartsvc "github.com/technest-labs/storefront-backend/internal/cart"
	checkoutsvc "github.com/technest-labs/storefront-backend/internal/checkout"
	orderssvc "github.com/technest-labs/storefront-backend/internal/orders"
	productssvc "github.com/technest-labs/storefront-backend/internal/products"
	userssvc "github.com/technest-labs/storefront-backend/internal/users"
	wishlistsvc "github.com/technest-labs/storefront-backend/internal/wishlist"
	"github.com/technest-labs/storefront-backend/pkg/auth"
	"github.com/technest-labs/storefront-backend/pkg/config"
	"github.com/technest-labs/storefront-backend/pkg/db"
	"github.com/technest-labs/storefront-backend/pkg/logger"
	"github.com/technest-labs/storefront-backend/pkg/metrics"
	"github.com/technest-labs/storefront-backend/pkg/migrate"
	"github.com/technest-labs/storefront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	minter, err := auth.NewMinter(cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create token minter", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	gormDB := dbClient.DB()
	usersRepo := userssvc.NewRepository(gormDB)
	productsRepo := productssvc.NewRepository(gormDB)
	wishlistRepo := wishlistsvc.NewRepository(gormDB)
	cartRepo := cartsvc.NewRepository(gormDB)
	ordersRepo := orderssvc.NewRepository(gormDB)

	usersService, err := userssvc.NewService(usersRepo, minter, cfg.Password, logg)
	requireService(logg, "users", err)
	productsService, err := productssvc.NewService(productsRepo)
	requireService(logg, "products", err)
	wishlistService, err := wishlistsvc.NewService(wishlistsvc.ServiceParams{
		WishlistRepo: wishlistRepo,
		ProductRepo:  productsRepo,
	})
	requireService(logg, "wishlist", err)
	cartService, err := cartsvc.NewService(cartRepo, productsRepo)
	requireService(logg, "cart", err)
	checkoutService, err := checkoutsvc.NewService(dbClient, cartRepo, ordersRepo, logg, checkoutMetrics)
	requireService(logg, "checkout", err)
	ordersService, err := orderssvc.NewService(ordersRepo)
	requireService(logg, "orders", err)
	adminService, err := adminsvc.NewService(ordersRepo, usersRepo, productsRepo)
	requireService(logg, "admin", err)

	router := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          dbClient,
		Redis:       redisClient,
		TokenParser: minter,
		HTTPMetrics: httpMetrics,
		Registry:    registry,

		Users:    usersService,
		Products: productsService,
		Wishlist: wishlistService,
		Cart:     cartService,
		Checkout: checkoutService,
		Orders:   ordersService,
		Admin:    adminService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(logg.WithField(context.Background(), "service", name), "failed to create service", err)
	os.Exit(1)
}
