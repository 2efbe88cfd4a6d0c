package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"qkart/config"
	"qkart/controllers"
	"qkart/database"
	"qkart/lock"
	"qkart/logger"
	"qkart/middleware"
	"qkart/repository"
	"qkart/routes"
	"qkart/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New(logger.Options{Service: "qkart", Pretty: true})
		boot.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(logger.Options{
		Service: "qkart",
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongo, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	if err := mongo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}
	log.Info().Str("db", cfg.DBName).Msg("connected to mongodb")

	locker, rdb := newLocker(ctx, cfg, log)

	products := repository.NewProductRepository(mongo.ProductCollection, cfg.MongoTimeout)
	users := repository.NewUserRepository(mongo.UserCollection, cfg.MongoTimeout, cfg.DefaultAddress)
	carts := repository.NewCartRepository(mongo.CartCollection, cfg.MongoTimeout)
	orders := repository.NewOrderRepository(mongo.OrderCollection, cfg.MongoTimeout)
	tokens := repository.NewTokenRepository(mongo.BlacklistCollection, cfg.MongoTimeout)

	authService := services.NewAuthService(users, tokens, services.AuthConfig{
		Secret:             []byte(cfg.JWTSecret),
		Expiration:         cfg.JWTExpiration,
		DefaultAddress:     cfg.DefaultAddress,
		DefaultWalletMoney: cfg.DefaultWalletMoney,
	})
	userService := services.NewUserService(users)
	productService := services.NewProductService(products)
	cartService := services.NewCartService(services.CartDeps{
		Carts:                carts,
		Products:             products,
		Users:                users,
		Orders:               orders,
		Tx:                   repository.NewTransactor(mongo.Client),
		Locker:               locker,
		DefaultPaymentOption: cfg.DefaultPaymentOption,
		Logger:               log,
	})

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), middleware.Recovery(log))
	if err := r.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("trusted proxies")
	}
	routes.RegisterRoutes(r, routes.Handlers{
		Auth:         controllers.NewAuthController(authService, log),
		Products:     controllers.NewProductController(productService, log),
		Users:        controllers.NewUserController(userService, log),
		Carts:        controllers.NewCartController(cartService, log),
		Authenticate: middleware.AuthMiddleware(authService, userService),
		Ping:         mongo.Ping,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}
	if err := mongo.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect")
	}
	log.Info().Msg("stopped")
}

// newLocker picks the Redis lock when REDIS_ADDR is set so that replicas
// share cart locks; a single instance falls back to an in-process lock.
func newLocker(ctx context.Context, cfg config.Config, log zerolog.Logger) (services.Locker, *redis.Client) {
	if cfg.RedisAddr == "" {
		log.Warn().Msg("REDIS_ADDR not set, cart locks are local to this process")
		return lock.NewLocalLocker(cfg.CartLockWait), nil
	}

	client, err := database.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("connected to redis")
	return lock.NewRedisLocker(client, cfg.CartLockTTL, cfg.CartLockWait), client
}
