package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/webroomers/pg-booking-service/internal/config"
	"github.com/webroomers/pg-booking-service/internal/database"
	"github.com/webroomers/pg-booking-service/internal/guard"
	"github.com/webroomers/pg-booking-service/internal/handler"
	"github.com/webroomers/pg-booking-service/internal/middleware"
	"github.com/webroomers/pg-booking-service/internal/queue"
	"github.com/webroomers/pg-booking-service/internal/repository"
	"github.com/webroomers/pg-booking-service/internal/router"
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env wins
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unreachable
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	propRepo := repository.NewPropertyRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	permRepo := repository.NewPermissionRepo(db)
	enquiryRepo := repository.NewEnquiryRepo(db)
	checkoutRepo := repository.NewCheckoutRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)

	// One in-flight guard shared by every resolve endpoint
	g := guard.New()

	// Handlers
	authH := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	propH := handler.NewPropertyHandler(propRepo, roomRepo)
	permH := handler.NewPermissionHandler(permRepo)
	enquiryH := handler.NewEnquiryHandler(cfg, enquiryRepo, roomRepo, propRepo, permRepo, paymentRepo, g)
	checkoutH := handler.NewCheckoutHandler(cfg, checkoutRepo, enquiryRepo, propRepo, permRepo, g)
	paymentH := handler.NewPaymentHandler(cfg, paymentRepo, enquiryRepo, permRepo, g)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)) // global rate limit
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)    // applied per read route

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterTenant(e, propH, enquiryH, checkoutH, paymentH, cfg.JWTSecret, cache)
	router.RegisterOwner(e, enquiryH, checkoutH, paymentH, permH, cfg.JWTSecret, cache)

	// Background consumer: lifecycle events -> logs/tenancy.log
	go func() {
		if err := queue.StartTenancyConsumer(cfg.AMQPURL); err != nil {
			log.Printf("tenancy consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
