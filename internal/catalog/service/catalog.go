package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	catalogerrors "rihla/internal/catalog/errors"
	"rihla/internal/catalog/repository"
	"rihla/internal/catalog/validator"
	"rihla/pkg/config"
	apperrors "rihla/pkg/errors"
	"rihla/pkg/model"
	"rihla/pkg/sanitizer"
)

// CatalogService manages the bus inventory: operating companies, the routes
// they run, dated trips on those routes, and the per-trip seat maps.
type CatalogService interface {
	CreateCompany(ctx context.Context, company *model.Company) error
	ListCompanies(ctx context.Context, limit int, offset int64) ([]*model.Company, int64, error)
	CreateRoute(ctx context.Context, route *model.Route) error
	ListRoutes(ctx context.Context, limit int, offset int64) ([]*model.Route, int64, error)
	CreateTrip(ctx context.Context, trip *model.Trip) error
	GenerateSeats(ctx context.Context, tripID string) ([]*model.Seat, error)
	Search(ctx context.Context, req *model.TripSearchRequest) ([]*model.TripSummary, error)
	GetTrip(ctx context.Context, id string) (*model.TripDetail, error)
}

type catalogService struct {
	companyRepo repository.CompanyRepository
	routeRepo   repository.RouteRepository
	tripRepo    repository.TripRepository
	seatRepo    repository.SeatRepository
	validator   *validator.CatalogValidator
	cfg         *config.Config
}

func NewCatalogService(
	companyRepo repository.CompanyRepository,
	routeRepo repository.RouteRepository,
	tripRepo repository.TripRepository,
	seatRepo repository.SeatRepository,
	validator *validator.CatalogValidator,
	cfg *config.Config,
) CatalogService {
	return &catalogService{
		companyRepo: companyRepo,
		routeRepo:   routeRepo,
		tripRepo:    tripRepo,
		seatRepo:    seatRepo,
		validator:   validator,
		cfg:         cfg,
	}
}

func (s *catalogService) CreateCompany(ctx context.Context, company *model.Company) error {
	company.Name = sanitizer.NormalizeName(company.Name)
	company.Description = sanitizer.TrimAndNormalize(company.Description)

	if err := s.validator.ValidateCompany(company); err != nil {
		s.cfg.Log.Warn("Company validation failed", "error", err)
		return apperrors.Validation("Company validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		s.cfg.Log.Error("Failed to create company", "error", err)
		return apperrors.Internal("Failed to create company", err)
	}

	s.cfg.Log.Info("Company created", "id", company.ID, "name", company.Name)
	return nil
}

func (s *catalogService) ListCompanies(ctx context.Context, limit int, offset int64) ([]*model.Company, int64, error) {
	var count int64
	var companies []*model.Company
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.companyRepo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count companies", "error", errCount)
			errCount = apperrors.Internal("Failed to count companies", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		companies, errFind = s.companyRepo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list companies", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve companies", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return companies, count, nil
}

func (s *catalogService) CreateRoute(ctx context.Context, route *model.Route) error {
	route.OriginCity = sanitizer.NormalizeCity(route.OriginCity)
	route.DestinationCity = sanitizer.NormalizeCity(route.DestinationCity)

	if err := s.validator.ValidateRoute(route); err != nil {
		s.cfg.Log.Warn("Route validation failed", "error", err)
		return apperrors.Validation("Route validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.companyRepo.FindByID(ctx, route.CompanyID); err != nil {
		if errors.Is(err, catalogerrors.ErrCompanyNotFound) {
			return apperrors.NotFoundWithID("Bus company", route.CompanyID)
		}
		return apperrors.Internal("Failed to verify company", err)
	}

	if err := s.routeRepo.Create(ctx, route); err != nil {
		s.cfg.Log.Error("Failed to create route", "error", err)
		return apperrors.Internal("Failed to create route", err)
	}

	s.cfg.Log.Info("Route created",
		"id", route.ID,
		"origin", route.OriginCity,
		"destination", route.DestinationCity,
	)
	return nil
}

func (s *catalogService) ListRoutes(ctx context.Context, limit int, offset int64) ([]*model.Route, int64, error) {
	var count int64
	var routes []*model.Route
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.routeRepo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count routes", "error", errCount)
			errCount = apperrors.Internal("Failed to count routes", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		routes, errFind = s.routeRepo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list routes", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve routes", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return routes, count, nil
}

// CreateTrip persists a trip and generates its seat map. A zero Price is
// derived from the route distance and the bus category; a zero TotalSeats
// falls back to the fleet capacity for the category.
func (s *catalogService) CreateTrip(ctx context.Context, trip *model.Trip) error {
	route, err := s.routeRepo.FindByID(ctx, trip.RouteID)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrRouteNotFound) {
			return apperrors.NotFoundWithID("Bus route", trip.RouteID)
		}
		return apperrors.Internal("Failed to verify route", err)
	}
	if _, err := s.companyRepo.FindByID(ctx, trip.CompanyID); err != nil {
		if errors.Is(err, catalogerrors.ErrCompanyNotFound) {
			return apperrors.NotFoundWithID("Bus company", trip.CompanyID)
		}
		return apperrors.Internal("Failed to verify company", err)
	}

	s.applyTripDefaults(trip, route)

	if err := s.validator.ValidateTrip(trip); err != nil {
		s.cfg.Log.Warn("Trip validation failed", "error", err)
		return apperrors.Validation("Trip validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		s.cfg.Log.Error("Failed to create trip", "error", err)
		return apperrors.Internal("Failed to create trip", err)
	}

	if _, err := s.GenerateSeats(ctx, trip.ID); err != nil {
		return err
	}

	s.cfg.Log.Info("Trip created",
		"id", trip.ID,
		"route_id", trip.RouteID,
		"bus_type", trip.BusType,
		"departure_date", trip.DepartureDate,
		"total_seats", trip.TotalSeats,
	)
	return nil
}

func (s *catalogService) applyTripDefaults(trip *model.Trip, route *model.Route) {
	if trip.TotalSeats == 0 {
		trip.TotalSeats = model.DefaultSeatCount(trip.BusType)
	}
	if trip.Price == 0 {
		trip.Price = float64(route.DistanceKm) * s.cfg.BaseFarePerKm * model.FareMultiplier(trip.BusType)
	}
	if trip.Features == nil {
		trip.Features = defaultFeatures(trip.BusType)
	}
	trip.AvailableSeats = trip.TotalSeats
}

func defaultFeatures(busType string) []string {
	switch busType {
	case model.BusTypePremium:
		return []string{"air_conditioning", "wifi", "reclining_seats"}
	case model.BusTypeVIP:
		return []string{"air_conditioning", "wifi", "reclining_seats", "onboard_service", "extra_legroom"}
	default:
		return []string{"air_conditioning"}
	}
}

// GenerateSeats writes one seat record per unit of the trip's capacity,
// numbered "1".."N", and resets the trip's availability counters to a full
// bus. Calling it on a trip with existing bookings discards their seat state.
func (s *catalogService) GenerateSeats(ctx context.Context, tripID string) ([]*model.Seat, error) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrTripNotFound) {
			return nil, apperrors.NotFoundWithID("Bus trip", tripID)
		}
		return nil, apperrors.Internal("Failed to retrieve trip", err)
	}

	seats := make([]*model.Seat, 0, trip.TotalSeats)
	for i := 1; i <= trip.TotalSeats; i++ {
		seats = append(seats, &model.Seat{
			TripID:      trip.ID,
			SeatNumber:  fmt.Sprintf("%d", i),
			IsAvailable: true,
			Price:       trip.Price,
		})
	}

	if err := s.seatRepo.InsertMany(ctx, seats); err != nil {
		s.cfg.Log.Error("Failed to insert seats", "trip_id", trip.ID, "error", err)
		return nil, apperrors.Internal("Failed to generate seats", err)
	}
	if err := s.tripRepo.SetSeatInventory(ctx, trip.ID, trip.TotalSeats); err != nil {
		s.cfg.Log.Error("Failed to reset seat inventory", "trip_id", trip.ID, "error", err)
		return nil, apperrors.Internal("Failed to reset seat inventory", err)
	}

	s.cfg.Log.Info("Seats generated", "trip_id", trip.ID, "count", len(seats))
	return seats, nil
}
