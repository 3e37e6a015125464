package service

import (
	"context"
	"errors"
	"time"

	catalogerrors "rihla/internal/catalog/errors"
	apperrors "rihla/pkg/errors"
	"rihla/pkg/model"
	"rihla/pkg/sanitizer"
)

const departureDateLayout = "2006-01-02"

// Search finds trips departing on the requested calendar day with enough
// remaining capacity for the whole party. City matching is case-insensitive;
// no matching route or no qualifying trip yields an empty result, not an
// error.
func (s *catalogService) Search(ctx context.Context, req *model.TripSearchRequest) ([]*model.TripSummary, error) {
	req.OriginCity = sanitizer.NormalizeCity(req.OriginCity)
	req.DestinationCity = sanitizer.NormalizeCity(req.DestinationCity)
	if req.PassengersCount == 0 {
		req.PassengersCount = 1
	}

	if err := s.validator.ValidateSearch(req); err != nil {
		s.cfg.Log.Warn("Search validation failed", "error", err)
		return nil, apperrors.Validation("Search validation failed", map[string]any{"error": err.Error()})
	}

	dayStart, err := parseDepartureDate(req.DepartureDate)
	if err != nil {
		return nil, apperrors.Validation("Invalid departure date", map[string]any{
			"departure_date": req.DepartureDate,
			"expected":       "2006-01-02 or RFC3339",
		})
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	routes, err := s.routeRepo.FindByCities(ctx, req.OriginCity, req.DestinationCity)
	if err != nil {
		s.cfg.Log.Error("Failed to find routes by cities", "error", err)
		return nil, apperrors.Internal("Failed to search routes", err)
	}
	if len(routes) == 0 {
		return []*model.TripSummary{}, nil
	}

	routeByID := make(map[string]*model.Route, len(routes))
	routeIDs := make([]string, 0, len(routes))
	for _, route := range routes {
		routeByID[route.ID] = route
		routeIDs = append(routeIDs, route.ID)
	}

	trips, err := s.tripRepo.FindDepartures(ctx, routeIDs, dayStart, dayEnd, req.PassengersCount)
	if err != nil {
		s.cfg.Log.Error("Failed to find departures", "error", err)
		return nil, apperrors.Internal("Failed to search trips", err)
	}
	if len(trips) == 0 {
		return []*model.TripSummary{}, nil
	}

	companyIDs := make([]string, 0, len(trips))
	seen := make(map[string]bool, len(trips))
	for _, trip := range trips {
		if !seen[trip.CompanyID] {
			seen[trip.CompanyID] = true
			companyIDs = append(companyIDs, trip.CompanyID)
		}
	}
	companyByID, err := s.companyRepo.FindByIDs(ctx, companyIDs)
	if err != nil {
		s.cfg.Log.Error("Failed to load companies for search results", "error", err)
		return nil, apperrors.Internal("Failed to search trips", err)
	}

	results := make([]*model.TripSummary, 0, len(trips))
	for _, trip := range trips {
		results = append(results, &model.TripSummary{
			Trip:    trip,
			Route:   routeByID[trip.RouteID],
			Company: companyByID[trip.CompanyID],
		})
	}

	s.cfg.Log.Info("Trip search completed",
		"origin", req.OriginCity,
		"destination", req.DestinationCity,
		"departure_date", req.DepartureDate,
		"passengers", req.PassengersCount,
		"results", len(results),
	)
	return results, nil
}

// GetTrip returns the trip with its route, company and full seat map, for
// the seat-selection screen.
func (s *catalogService) GetTrip(ctx context.Context, id string) (*model.TripDetail, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Trip ID cannot be empty")
	}

	trip, err := s.tripRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrTripNotFound) {
			return nil, apperrors.NotFoundWithID("Bus trip", id)
		}
		return nil, apperrors.Internal("Failed to retrieve trip", err)
	}

	route, err := s.routeRepo.FindByID(ctx, trip.RouteID)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrRouteNotFound) {
			return nil, apperrors.NotFoundWithID("Bus route", trip.RouteID)
		}
		return nil, apperrors.Internal("Failed to retrieve route", err)
	}

	company, err := s.companyRepo.FindByID(ctx, trip.CompanyID)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrCompanyNotFound) {
			return nil, apperrors.NotFoundWithID("Bus company", trip.CompanyID)
		}
		return nil, apperrors.Internal("Failed to retrieve company", err)
	}

	seats, err := s.seatRepo.FindByTrip(ctx, trip.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve seats", err)
	}

	return &model.TripDetail{
		Trip:    trip,
		Route:   route,
		Company: company,
		Seats:   seats,
	}, nil
}

func parseDepartureDate(raw string) (time.Time, error) {
	if t, err := time.Parse(departureDateLayout, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
