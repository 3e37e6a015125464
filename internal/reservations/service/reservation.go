package service

import (
	"context"
	"errors"

	catalogerrors "rihla/internal/catalog/errors"
	catalogrepo "rihla/internal/catalog/repository"
	reserrors "rihla/internal/reservations/errors"
	"rihla/internal/reservations/repository"
	"rihla/internal/reservations/validator"
	"rihla/pkg/config"
	apperrors "rihla/pkg/errors"
	"rihla/pkg/kafka"
	"rihla/pkg/model"
	"rihla/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	eventBookingCreated  = "bus.booking.created"
	eventBookingCanceled = "bus.booking.canceled"
	eventSource          = "rihla-api"
)

// ReservationService owns the booking lifecycle: claiming a seat, listing a
// caller's bookings, and releasing a seat on cancellation. Seat state, the
// booking record and the trip's availability counter change together inside
// one transaction, so a seat can never be sold twice and the counter never
// drifts from the seat map.
type ReservationService interface {
	Book(ctx context.Context, userID string, booking *model.TicketBooking) error
	Cancel(ctx context.Context, userID, bookingID string) (*model.TicketBooking, error)
	ListMine(ctx context.Context, userID string) ([]*model.TicketBookingView, error)
}

type reservationService struct {
	bookingRepo repository.BookingRepository
	tripRepo    catalogrepo.TripRepository
	seatRepo    catalogrepo.SeatRepository
	routeRepo   catalogrepo.RouteRepository
	companyRepo catalogrepo.CompanyRepository
	validator   *validator.BookingValidator
	producer    *kafka.Producer
	cfg         *config.Config
}

// NewReservationService wires the engine. producer may be nil; events are
// then skipped.
func NewReservationService(
	bookingRepo repository.BookingRepository,
	tripRepo catalogrepo.TripRepository,
	seatRepo catalogrepo.SeatRepository,
	routeRepo catalogrepo.RouteRepository,
	companyRepo catalogrepo.CompanyRepository,
	validator *validator.BookingValidator,
	producer *kafka.Producer,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		bookingRepo: bookingRepo,
		tripRepo:    tripRepo,
		seatRepo:    seatRepo,
		routeRepo:   routeRepo,
		companyRepo: companyRepo,
		validator:   validator,
		producer:    producer,
		cfg:         cfg,
	}
}

func (s *reservationService) Book(ctx context.Context, userID string, booking *model.TicketBooking) error {
	if userID == "" {
		return apperrors.Unauthorized("Missing caller identity")
	}
	booking.UserID = userID
	booking.Status = model.TicketBookingActive
	s.sanitize(booking)

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.tripRepo.FindByID(ctx, booking.TripID); err != nil {
		if errors.Is(err, catalogerrors.ErrTripNotFound) {
			return apperrors.NotFoundWithID("Bus trip", booking.TripID)
		}
		return apperrors.Internal("Failed to verify trip", err)
	}

	seat, err := s.seatRepo.FindByTripAndNumber(ctx, booking.TripID, booking.SeatNumber)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrSeatNotFound) {
			return apperrors.NotFound("Seat")
		}
		return apperrors.Internal("Failed to verify seat", err)
	}
	booking.Price = seat.Price

	err = s.bookingRepo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		claimed, err := s.seatRepo.ClaimSeat(sessCtx, booking.TripID, booking.SeatNumber)
		if err != nil {
			return apperrors.Internal("Failed to claim seat", err)
		}
		if !claimed {
			return apperrors.Conflict("Seat is already booked")
		}

		if err := s.bookingRepo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}

		if err := s.tripRepo.IncrementAvailableSeats(sessCtx, booking.TripID, -1); err != nil {
			return apperrors.Internal("Failed to update seat availability", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to book seat",
			"trip_id", booking.TripID,
			"seat_number", booking.SeatNumber,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Seat booked",
		"id", booking.ID,
		"trip_id", booking.TripID,
		"seat_number", booking.SeatNumber,
		"user_id", booking.UserID,
	)
	s.publishEvent(ctx, eventBookingCreated, booking)
	return nil
}

func (s *reservationService) Cancel(ctx context.Context, userID, bookingID string) (*model.TicketBooking, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("Missing caller identity")
	}
	if bookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	// Lookup is scoped to the caller: someone else's booking reads as absent,
	// not forbidden.
	booking, err := s.bookingRepo.FindByIDAndUser(ctx, bookingID, userID)
	if err != nil {
		if errors.Is(err, reserrors.ErrBookingNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", bookingID)
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}
	if booking.IsCanceled() {
		return nil, apperrors.Conflict("Booking is already canceled")
	}

	err = s.bookingRepo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.bookingRepo.SetStatus(sessCtx, booking.ID, model.TicketBookingCanceled); err != nil {
			return apperrors.Internal("Failed to cancel booking", err)
		}

		released, err := s.seatRepo.ReleaseSeat(sessCtx, booking.TripID, booking.SeatNumber)
		if err != nil {
			return apperrors.Internal("Failed to release seat", err)
		}
		if released {
			if err := s.tripRepo.IncrementAvailableSeats(sessCtx, booking.TripID, 1); err != nil {
				return apperrors.Internal("Failed to update seat availability", err)
			}
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to cancel booking", "id", booking.ID, "error", err)
		return nil, err
	}

	booking.Status = model.TicketBookingCanceled

	s.cfg.Log.Info("Booking canceled",
		"id", booking.ID,
		"trip_id", booking.TripID,
		"seat_number", booking.SeatNumber,
	)
	s.publishEvent(ctx, eventBookingCanceled, booking)
	return booking, nil
}

func (s *reservationService) ListMine(ctx context.Context, userID string) ([]*model.TicketBookingView, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("Missing caller identity")
	}

	bookings, err := s.bookingRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	views := make([]*model.TicketBookingView, 0, len(bookings))
	for _, booking := range bookings {
		view := &model.TicketBookingView{Booking: booking}

		// A removed trip leaves the booking intact; its context reads null.
		trip, err := s.tripRepo.FindByID(ctx, booking.TripID)
		if err != nil {
			if !errors.Is(err, catalogerrors.ErrTripNotFound) {
				return nil, apperrors.Internal("Failed to retrieve trip", err)
			}
			views = append(views, view)
			continue
		}
		view.Trip = trip

		route, err := s.routeRepo.FindByID(ctx, trip.RouteID)
		if err != nil && !errors.Is(err, catalogerrors.ErrRouteNotFound) {
			return nil, apperrors.Internal("Failed to retrieve route", err)
		}
		view.Route = route

		company, err := s.companyRepo.FindByID(ctx, trip.CompanyID)
		if err != nil && !errors.Is(err, catalogerrors.ErrCompanyNotFound) {
			return nil, apperrors.Internal("Failed to retrieve company", err)
		}
		view.Company = company

		views = append(views, view)
	}
	return views, nil
}

func (s *reservationService) sanitize(b *model.TicketBooking) {
	b.TripID = sanitizer.TrimAndNormalize(b.TripID)
	b.SeatNumber = sanitizer.TrimAndNormalize(b.SeatNumber)
	b.PassengerName = sanitizer.NormalizeName(b.PassengerName)

	raw := sanitizer.TrimAndNormalize(b.PassengerPhone)
	if normalized := sanitizer.NormalizePhone(raw); normalized != "" {
		b.PassengerPhone = normalized
	} else {
		b.PassengerPhone = raw
	}
}

func (s *reservationService) publishEvent(ctx context.Context, eventType string, booking *model.TicketBooking) {
	if s.producer == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(booking.TripID).
		WithValue(booking).
		WithEventType(eventType).
		WithSource(eventSource).
		Build()

	if err := s.producer.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}
