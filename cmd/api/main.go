package main

import (
	"context"
	"strings"

	authhandler "rihla/internal/auth/handler"
	authrepo "rihla/internal/auth/repository"
	authservice "rihla/internal/auth/service"
	authvalidator "rihla/internal/auth/validator"
	cataloghandler "rihla/internal/catalog/handler"
	catalogrepo "rihla/internal/catalog/repository"
	catalogservice "rihla/internal/catalog/service"
	catalogvalidator "rihla/internal/catalog/validator"
	hotelhandler "rihla/internal/hotels/handler"
	hotelrepo "rihla/internal/hotels/repository"
	hotelservice "rihla/internal/hotels/service"
	hotelvalidator "rihla/internal/hotels/validator"
	reshandler "rihla/internal/reservations/handler"
	resrepo "rihla/internal/reservations/repository"
	resservice "rihla/internal/reservations/service"
	resvalidator "rihla/internal/reservations/validator"
	"rihla/pkg/app"
	"rihla/pkg/config"
	"rihla/pkg/kafka"
	"rihla/pkg/middleware"
	"rihla/pkg/token"

	"github.com/joho/godotenv"
)

const ServiceName = "rihla-api"

func main() {
	// Missing .env is fine in deployed environments; everything has defaults
	// or comes from real env vars there.
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.AccessTTL)
	auth := middleware.RequireAuth(issuer, cfg.Log)

	producer := initProducer(cfg)
	if producer != nil {
		defer func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Warn("Failed to close Kafka producer", "error", err)
			}
		}()
	}

	userRepo := authrepo.NewMongoUserRepository(cfg)
	if err := userRepo.EnsureIndexes(context.Background()); err != nil {
		cfg.Log.Fatal("Failed to ensure user indexes", "error", err)
	}
	authSvc := authservice.NewAuthService(userRepo, authvalidator.NewAuthValidator(), issuer, cfg)

	companyRepo := catalogrepo.NewMongoCompanyRepository(cfg)
	routeRepo := catalogrepo.NewMongoRouteRepository(cfg)
	tripRepo := catalogrepo.NewMongoTripRepository(cfg)
	seatRepo := catalogrepo.NewMongoSeatRepository(cfg)
	catalogSvc := catalogservice.NewCatalogService(
		companyRepo,
		routeRepo,
		tripRepo,
		seatRepo,
		catalogvalidator.NewCatalogValidator(cfg.Log),
		cfg,
	)

	bookingRepo := resrepo.NewMongoBookingRepository(cfg)
	reservationSvc := resservice.NewReservationService(
		bookingRepo,
		tripRepo,
		seatRepo,
		routeRepo,
		companyRepo,
		resvalidator.NewBookingValidator(),
		producer,
		cfg,
	)

	hotelRepo := hotelrepo.NewMongoHotelRepository(cfg)
	roomRepo := hotelrepo.NewMongoRoomRepository(cfg)
	hotelBookingRepo := hotelrepo.NewMongoBookingRepository(cfg)
	hotelSvc := hotelservice.NewHotelService(
		hotelRepo,
		roomRepo,
		hotelBookingRepo,
		hotelvalidator.NewHotelValidator(),
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		authhandler.NewAuthHandler(authSvc, auth, cfg.Log),
		cataloghandler.NewCatalogHandler(catalogSvc, auth, cfg.Log),
		reshandler.NewReservationHandler(reservationSvc, auth, cfg.Log),
		hotelhandler.NewHotelHandler(hotelSvc, auth, cfg.Log),
	)
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	if cfg.KafkaBrokers == "" {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return nil
	}

	producer, err := kafka.NewProducer(
		strings.Split(cfg.KafkaBrokers, ","),
		cfg.ReservationTopic,
		cfg.ReservationDLQTopic,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Kafka producer initialized", "topic", cfg.ReservationTopic)
	return producer
}
