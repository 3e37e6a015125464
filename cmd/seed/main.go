package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	authrepo "rihla/internal/auth/repository"
	catalogrepo "rihla/internal/catalog/repository"
	catalogservice "rihla/internal/catalog/service"
	catalogvalidator "rihla/internal/catalog/validator"
	hotelrepo "rihla/internal/hotels/repository"
	hotelservice "rihla/internal/hotels/service"
	hotelvalidator "rihla/internal/hotels/validator"
	resrepo "rihla/internal/reservations/repository"
	"rihla/pkg/config"
	"rihla/pkg/model"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
)

const ServiceName = "rihla-seed"

var cities = []string{
	"algiers", "oran", "constantine", "annaba", "setif",
	"batna", "blida", "sidi_bel_abbes", "tlemcen", "biskra",
}

var departureHours = []int{8, 12, 16}

var busTypes = []string{model.BusTypeStandard, model.BusTypePremium, model.BusTypeVIP}

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	wipe(ctx, cfg)

	catalogSvc := catalogservice.NewCatalogService(
		catalogrepo.NewMongoCompanyRepository(cfg),
		catalogrepo.NewMongoRouteRepository(cfg),
		catalogrepo.NewMongoTripRepository(cfg),
		catalogrepo.NewMongoSeatRepository(cfg),
		catalogvalidator.NewCatalogValidator(cfg.Log),
		cfg,
	)
	hotelSvc := hotelservice.NewHotelService(
		hotelrepo.NewMongoHotelRepository(cfg),
		hotelrepo.NewMongoRoomRepository(cfg),
		hotelrepo.NewMongoBookingRepository(cfg),
		hotelvalidator.NewHotelValidator(),
		cfg,
	)

	companyIDs := seedCompanies(ctx, cfg, catalogSvc)
	routes := seedRoutes(ctx, cfg, catalogSvc, companyIDs)
	seedTrips(ctx, cfg, catalogSvc, routes)
	seedHotels(ctx, cfg, hotelSvc)

	cfg.Log.Info("Seeding complete")
}

// wipe clears every seeded collection so reruns start from scratch.
func wipe(ctx context.Context, cfg *config.Config) {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	collections := []string{
		catalogrepo.CompanyCollection,
		catalogrepo.RouteCollection,
		catalogrepo.TripCollection,
		catalogrepo.SeatCollection,
		resrepo.BookingCollection,
		hotelrepo.HotelCollection,
		hotelrepo.RoomCollection,
		hotelrepo.BookingCollection,
		authrepo.UserCollection,
	}
	for _, name := range collections {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			cfg.Log.Fatal("Failed to wipe collection", "collection", name, "error", err)
		}
	}
	cfg.Log.Info("Existing data cleared", "collections", len(collections))
}

func seedCompanies(ctx context.Context, cfg *config.Config, svc catalogservice.CatalogService) []string {
	companies := []*model.Company{
		{
			Name:        "شركة النقل الجزائرية",
			Logo:        "https://images.unsplash.com/photo-1544620347-c4fd4a3d5957?w=500",
			Description: "شركة النقل الرائدة في الجزائر، توفر خدمات نقل آمنة وموثوقة بين المدن",
		},
		{
			Name:        "الحافلات السريعة",
			Logo:        "https://images.unsplash.com/photo-1570125909232-eb263c188f7e?w=500",
			Description: "نقدم خدمات نقل سريعة ومريحة بين المدن الكبرى في الجزائر",
		},
		{
			Name:        "الاتحاد للنقل",
			Logo:        "https://images.unsplash.com/photo-1464219789935-c2d9d9aba644?w=500",
			Description: "نربط مدن الجزائر بشبكة واسعة من الحافلات المريحة",
		},
	}

	ids := make([]string, 0, len(companies))
	for _, company := range companies {
		if err := svc.CreateCompany(ctx, company); err != nil {
			cfg.Log.Fatal("Failed to seed company", "name", company.Name, "error", err)
		}
		ids = append(ids, company.ID)
	}
	cfg.Log.Info("Companies seeded", "count", len(ids))
	return ids
}

// seedRoutes creates the full ordered city-pair matrix. Distances are
// synthetic; a real deployment would source them from a mapping provider.
func seedRoutes(ctx context.Context, cfg *config.Config, svc catalogservice.CatalogService, companyIDs []string) []*model.Route {
	var routes []*model.Route
	for i := range cities {
		for j := range cities {
			if i == j {
				continue
			}
			distance := rand.Intn(751) + 50
			route := &model.Route{
				CompanyID:       companyIDs[rand.Intn(len(companyIDs))],
				OriginCity:      cities[i],
				DestinationCity: cities[j],
				DistanceKm:      distance,
				DurationMinutes: distance * 12 / 10,
			}
			if err := svc.CreateRoute(ctx, route); err != nil {
				cfg.Log.Fatal("Failed to seed route",
					"origin", route.OriginCity,
					"destination", route.DestinationCity,
					"error", err,
				)
			}
			routes = append(routes, route)
		}
	}
	cfg.Log.Info("Routes seeded", "count", len(routes))
	return routes
}

// seedTrips creates three departures per route per day for the next week.
// Price, seat count, features and the seat map all come from the catalog
// service defaults for the rolled bus type.
func seedTrips(ctx context.Context, cfg *config.Config, svc catalogservice.CatalogService, routes []*model.Route) {
	today := time.Now().UTC()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	count := 0
	for _, route := range routes {
		for day := 0; day < 7; day++ {
			for _, hour := range departureHours {
				trip := &model.Trip{
					RouteID:       route.ID,
					CompanyID:     route.CompanyID,
					BusType:       busTypes[rand.Intn(len(busTypes))],
					DepartureDate: today.AddDate(0, 0, day),
					DepartureTime: fmt.Sprintf("%02d:00", hour),
					ArrivalTime:   arrivalTime(hour, route.DurationMinutes),
				}
				if err := svc.CreateTrip(ctx, trip); err != nil {
					cfg.Log.Fatal("Failed to seed trip", "route_id", route.ID, "error", err)
				}
				count++
			}
		}
	}
	cfg.Log.Info("Trips seeded", "count", count)
}

func arrivalTime(departureHour, durationMinutes int) string {
	total := departureHour*60 + durationMinutes
	return fmt.Sprintf("%02d:%02d", (total/60)%24, total%60)
}

func seedHotels(ctx context.Context, cfg *config.Config, svc hotelservice.HotelService) {
	hotels := []struct {
		hotel model.Hotel
		rooms []model.Room
	}{
		{
			hotel: model.Hotel{
				Name:        "فندق الأوراسي",
				City:        "algiers",
				Address:     "2 Boulevard Frantz Fanon, Algiers",
				Description: "فندق فاخر يطل على خليج الجزائر",
				Stars:       5,
				Amenities:   []string{"wifi", "pool", "spa", "restaurant"},
			},
			rooms: []model.Room{
				{Name: "غرفة مزدوجة", PricePerNight: 12000, Capacity: 2, Available: true},
				{Name: "جناح عائلي", PricePerNight: 22000, Capacity: 4, Available: true},
			},
		},
		{
			hotel: model.Hotel{
				Name:        "فندق الزيانيين",
				City:        "tlemcen",
				Address:     "Plateau Lalla Setti, Tlemcen",
				Description: "إقامة هادئة على هضبة لالة ستي",
				Stars:       4,
				Amenities:   []string{"wifi", "restaurant", "parking"},
			},
			rooms: []model.Room{
				{Name: "غرفة فردية", PricePerNight: 6000, Capacity: 1, Available: true},
				{Name: "غرفة مزدوجة", PricePerNight: 9000, Capacity: 2, Available: true},
			},
		},
		{
			hotel: model.Hotel{
				Name:        "فندق سيرتا",
				City:        "constantine",
				Address:     "1 Avenue Rahmani Achour, Constantine",
				Description: "في قلب مدينة الجسور المعلقة",
				Stars:       3,
				Amenities:   []string{"wifi", "restaurant"},
			},
			rooms: []model.Room{
				{Name: "غرفة مزدوجة", PricePerNight: 7000, Capacity: 2, Available: true},
			},
		},
	}

	hotelCount, roomCount := 0, 0
	for _, entry := range hotels {
		hotel := entry.hotel
		if err := svc.CreateHotel(ctx, &hotel); err != nil {
			cfg.Log.Fatal("Failed to seed hotel", "name", hotel.Name, "error", err)
		}
		hotelCount++
		for _, room := range entry.rooms {
			room.HotelID = hotel.ID
			if err := svc.CreateRoom(ctx, &room); err != nil {
				cfg.Log.Fatal("Failed to seed room", "hotel_id", hotel.ID, "error", err)
			}
			roomCount++
		}
	}
	cfg.Log.Info("Hotels seeded", "hotels", hotelCount, "rooms", roomCount)
}
