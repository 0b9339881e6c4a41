package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/slicehaus/slicehaus-backend/api/controllers"
	"github.com/slicehaus/slicehaus-backend/api/routes"
	authsvc "github.com/slicehaus/slicehaus-backend/internal/auth"
	cartsvc "github.com/slicehaus/slicehaus-backend/internal/cart"
	"github.com/slicehaus/slicehaus-backend/internal/catalog"
	ordersvc "github.com/slicehaus/slicehaus-backend/internal/orders"
	"github.com/slicehaus/slicehaus-backend/internal/pricing"
	"github.com/slicehaus/slicehaus-backend/internal/users"
	"github.com/slicehaus/slicehaus-backend/pkg/config"
	"github.com/slicehaus/slicehaus-backend/pkg/db"
	"github.com/slicehaus/slicehaus-backend/pkg/logger"
	"github.com/slicehaus/slicehaus-backend/pkg/migrate"
	"github.com/slicehaus/slicehaus-backend/pkg/observe"
	"github.com/slicehaus/slicehaus-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	menu, err := catalog.Load(context.Background(), cfg.Catalog.MenuPath, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to load menu catalog", err)
		os.Exit(1)
	}

	monitor := observe.NewMonitor(logg, 0)
	engine := pricing.NewEngine(menu)
	rates := pricing.Rates{
		TaxRate:     cfg.Pricing.TaxRate,
		DeliveryFee: cfg.Pricing.DeliveryFee,
	}

	cartStore := cartsvc.NewStore(redisClient, cfg.Redis.CartTTL, logg)
	cartService := cartsvc.NewService(cartStore, menu, engine, rates, monitor, logg)

	orderService, err := ordersvc.NewService(ordersvc.ServiceParams{
		Repo:     ordersvc.NewRepository(dbClient.DB()),
		Menu:     menu,
		Engine:   engine,
		Rates:    rates,
		Checkout: cfg.Checkout,
		Monitor:  monitor,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:  cfg,
		Logger:  logg,
		Catalog: menu,
		Carts:   cartService,
		Orders:  orderService,
		Auth:    authService,
		Monitor: monitor,
		Pingers: map[string]controllers.Pinger{
			"database": dbClient,
			"redis":    redisClient,
		},
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
		Addr:    addr,
		Handler: router,
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
		logg.Info(logg.WithFields(ctx, map[string]any{"signal": sig.String()}), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
