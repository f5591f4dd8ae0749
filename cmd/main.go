package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"tour-booking-api/config"
	"tour-booking-api/internal/handler"
	"tour-booking-api/internal/model"
	"tour-booking-api/internal/repository"
	"tour-booking-api/internal/security"
	"tour-booking-api/internal/service"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Tour Booking API
// @version 1.0
// @description REST API для бронирования туров

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	tourRepo := repository.NewTourRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(redisClient, cfg.JWT.RefreshTokenTTL)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}
	imageService := service.NewImageService()
	mailService := service.NewMailService(&cfg.Mail)
	stripeService := service.NewStripeService(&cfg.Stripe)

	jwtService := security.NewJWTService(&cfg.JWT)
	authService := service.NewAuthenticationService(userRepo, refreshRepo, jwtService, mailService, db)
	userService := service.NewUserService(userRepo, s3Service, imageService, db)
	tourService := service.NewTourService(tourRepo, s3Service, imageService, db)
	reviewService := service.NewReviewService(reviewRepo, tourRepo, db)
	bookingService := service.NewBookingService(bookingRepo, tourRepo, stripeService, db)

	authHandler := handler.NewAuthenticationHandler(authService, cfg)
	userHandler := handler.NewUserHandler(userService)
	tourHandler := handler.NewTourHandler(tourService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	bookingHandler := handler.NewBookingHandler(bookingService)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	protect := security.JWTMiddleware(jwtService, userRepo, db)

	setupUserRoutes(router, authHandler, userHandler, protect)
	setupTourRoutes(router, tourHandler, reviewHandler, protect)
	setupReviewRoutes(router, reviewHandler, protect)
	setupBookingRoutes(router, bookingHandler, protect)

	runServer(ctx, srv)
}

func setupUserRoutes(r chi.Router, auth *handler.AuthenticationHandler, users *handler.UserHandler, protect func(http.Handler) http.Handler) {
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/signup", auth.SignUp)
		r.Post("/signin", auth.SignIn)
		r.Get("/signout", auth.SignOut)
		r.Post("/refresh-token", auth.RefreshToken)
		r.Post("/forgotPassword", auth.ForgotPassword)
		r.Patch("/resetPassword/{token}", auth.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(protect)

			r.Patch("/updatePassword", auth.UpdatePassword)
			r.Get("/verify", auth.StartVerification)
			r.Patch("/verifyAccount/{token}", auth.FinishVerification)

			r.Get("/me", users.Me)
			r.Patch("/updateMe", users.UpdateMe)
			r.Delete("/deleteMe", users.DeleteMe)

			r.Group(func(r chi.Router) {
				r.Use(security.RestrictTo(model.RoleAdmin))
				r.Get("/", users.ListUsers)
				r.Get("/{uuid}", users.GetUser)
				r.Patch("/{uuid}", users.UpdateUser)
				r.Delete("/{uuid}", users.DeleteUser)
			})
		})
	})
}

func setupTourRoutes(r chi.Router, tours *handler.TourHandler, reviews *handler.ReviewHandler, protect func(http.Handler) http.Handler) {
	r.Route("/api/v1/tours", func(r chi.Router) {
		r.Get("/", tours.ListTours)
		r.Get("/top-5-cheap", tours.TopFiveTours)
		r.Get("/tour-stats", tours.TourStats)
		r.Get("/slug/{slug}", tours.GetTourBySlug)
		r.Get("/{uuid}", tours.GetTour)

		r.Group(func(r chi.Router) {
			r.Use(protect)

			r.With(security.RestrictTo(model.RoleAdmin, model.RoleGuide, model.RoleLeadGuide)).
				Get("/monthly-plan/{year}", tours.MonthlyPlan)

			r.Group(func(r chi.Router) {
				r.Use(security.RestrictTo(model.RoleAdmin, model.RoleLeadGuide))
				r.Post("/", tours.CreateTour)
				r.Patch("/{uuid}", tours.UpdateTour)
				r.Patch("/{uuid}/images", tours.UpdateTourImages)
				r.Delete("/{uuid}", tours.DeleteTour)
			})

			// вложенные отзывы тура
			r.Route("/{tourUUID}/reviews", func(r chi.Router) {
				r.Get("/", reviews.ListReviews)
				r.With(security.RestrictTo(model.RoleUser)).Post("/", reviews.CreateReview)
			})
		})
	})
}

func setupReviewRoutes(r chi.Router, reviews *handler.ReviewHandler, protect func(http.Handler) http.Handler) {
	r.Route("/api/v1/reviews", func(r chi.Router) {
		r.Use(protect)

		r.Get("/", reviews.ListReviews)
		r.With(security.RestrictTo(model.RoleUser)).Post("/", reviews.CreateReview)

		r.Route("/{uuid}", func(r chi.Router) {
			r.Get("/", reviews.GetReview)
			r.Patch("/", reviews.UpdateReview)
			r.Delete("/", reviews.DeleteReview)
		})
	})
}

func setupBookingRoutes(r chi.Router, bookings *handler.BookingHandler, protect func(http.Handler) http.Handler) {
	r.Route("/api/v1/bookings", func(r chi.Router) {
		r.Use(protect)

		r.Get("/checkout-session/{tourUUID}", bookings.CheckoutSession)
		r.Post("/checkout", bookings.CreateBookingCheckout)
		r.Get("/my-tours", bookings.MyBookings)

		r.Group(func(r chi.Router) {
			r.Use(security.RestrictTo(model.RoleAdmin, model.RoleLeadGuide))
			r.Get("/", bookings.ListBookings)
			r.Post("/", bookings.CreateBooking)
			r.Get("/{uuid}", bookings.GetBooking)
			r.Patch("/{uuid}", bookings.UpdateBooking)
			r.Delete("/{uuid}", bookings.DeleteBooking)
		})
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
