package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/wanderlust-app/wanderlust/config"
	"github.com/wanderlust-app/wanderlust/internal/handler"
	"github.com/wanderlust-app/wanderlust/internal/middleware"
	"github.com/wanderlust-app/wanderlust/internal/repository"
	"github.com/wanderlust-app/wanderlust/internal/service"
	"github.com/wanderlust-app/wanderlust/internal/travel"
	"github.com/wanderlust-app/wanderlust/internal/ws"
	"github.com/wanderlust-app/wanderlust/pkg/cache"
	"github.com/wanderlust-app/wanderlust/pkg/database"
	"github.com/wanderlust-app/wanderlust/pkg/rabbitmq"
	"github.com/wanderlust-app/wanderlust/web"
)

func main() {
	seed := flag.Bool("seed", false, "wipe and reseed sample listings, then exit")
	flag.Parse()

	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	if *seed {
		if err := seedListings(db); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		log.Println("sample listings seeded")
		return
	}

	// RabbitMQ is optional: without it domain events are simply not published
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	}

	redisClient := cache.NewRedis(cfg.RedisAddr)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	planRepo := repository.NewPlanRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	chatRepo := repository.NewChatRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, sessionRepo, publisher)
	listingSvc := service.NewListingService(listingRepo)
	bookingSvc := service.NewBookingService(bookingRepo, listingRepo, publisher)
	socialSvc := service.NewSocialService(userRepo, planRepo)
	reviewSvc := service.NewReviewService(reviewRepo, listingRepo, publisher)
	chatSvc := service.NewChatService(chatRepo)

	sessions := middleware.NewSessionManager(cfg.SessionCookie, sessionRepo, userRepo)

	// Hourly sweep of expired session rows
	go func() {
		for {
			if err := sessions.Sweep(context.Background()); err != nil {
				log.Printf("[Session] sweep failed: %v", err)
			}
			time.Sleep(time.Hour)
		}
	}()

	gateway := ws.NewGateway(ws.NewHub(), chatSvc)
	holidays := travel.NewHolidayClient(redisClient)

	// Echo
	e := echo.New()
	e.Renderer = web.NewRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	// HTML forms carry DELETE in a _method field
	e.Pre(echoMw.MethodOverrideWithConfig(echoMw.MethodOverrideConfig{
		Getter: echoMw.MethodFromForm("_method"),
	}))
	e.Use(sessions.Resolve())

	e.Static("/public", "public")

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "wanderlust"})
	})
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(302, "/listings")
	})

	handler.NewAuthHandler(authSvc, sessions).RegisterRoutes(e)
	handler.NewListingHandler(listingSvc, socialSvc, chatSvc, sessions).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc, listingSvc, sessions).RegisterRoutes(e)
	handler.NewSocialHandler(socialSvc, listingSvc, sessions).RegisterRoutes(e)
	handler.NewReviewHandler(reviewSvc, listingSvc, sessions).RegisterRoutes(e)
	handler.NewTravelHandler(holidays).RegisterRoutes(e)

	e.GET("/ws", gateway.Handle)

	log.Printf("WanderLust server starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
