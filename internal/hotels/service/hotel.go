package service

import (
	"context"
	"errors"
	"sync"
	"time"

	hotelerrors "rihla/internal/hotels/errors"
	"rihla/internal/hotels/repository"
	"rihla/internal/hotels/validator"
	"rihla/pkg/config"
	apperrors "rihla/pkg/errors"
	"rihla/pkg/model"
	"rihla/pkg/sanitizer"
)

// HotelService manages the hotel side of the catalog and its bookings.
// Unlike bus seats, rooms carry no availability state: bookings are priced
// and recorded unconditionally.
type HotelService interface {
	CreateHotel(ctx context.Context, hotel *model.Hotel) error
	ListHotels(ctx context.Context, filter repository.HotelFilter, limit int, offset int64) ([]*model.Hotel, int64, error)
	GetHotel(ctx context.Context, id string) (*model.Hotel, error)
	SearchHotels(ctx context.Context, req *model.HotelSearchRequest) ([]*model.Hotel, error)
	CreateRoom(ctx context.Context, room *model.Room) error
	ListRooms(ctx context.Context, hotelID string) ([]*model.Room, error)
	CreateBooking(ctx context.Context, userID string, booking *model.HotelBooking) error
	ListMyBookings(ctx context.Context, userID string) ([]*model.HotelBooking, error)
}

type hotelService struct {
	hotelRepo   repository.HotelRepository
	roomRepo    repository.RoomRepository
	bookingRepo repository.BookingRepository
	validator   *validator.HotelValidator
	cfg         *config.Config
}

func NewHotelService(
	hotelRepo repository.HotelRepository,
	roomRepo repository.RoomRepository,
	bookingRepo repository.BookingRepository,
	validator *validator.HotelValidator,
	cfg *config.Config,
) HotelService {
	return &hotelService{
		hotelRepo:   hotelRepo,
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		validator:   validator,
		cfg:         cfg,
	}
}

func (s *hotelService) CreateHotel(ctx context.Context, hotel *model.Hotel) error {
	hotel.Name = sanitizer.NormalizeName(hotel.Name)
	hotel.City = sanitizer.NormalizeCity(hotel.City)
	hotel.Address = sanitizer.TrimAndNormalize(hotel.Address)
	hotel.Description = sanitizer.TrimAndNormalize(hotel.Description)

	if err := s.validator.ValidateHotel(hotel); err != nil {
		s.cfg.Log.Warn("Hotel validation failed", "error", err)
		return apperrors.Validation("Hotel validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.hotelRepo.Create(ctx, hotel); err != nil {
		s.cfg.Log.Error("Failed to create hotel", "error", err)
		return apperrors.Internal("Failed to create hotel", err)
	}

	s.cfg.Log.Info("Hotel created", "id", hotel.ID, "name", hotel.Name, "city", hotel.City)
	return nil
}

func (s *hotelService) ListHotels(ctx context.Context, filter repository.HotelFilter, limit int, offset int64) ([]*model.Hotel, int64, error) {
	filter.City = sanitizer.NormalizeCity(filter.City)

	var count int64
	var hotels []*model.Hotel
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.hotelRepo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count hotels", "error", errCount)
			errCount = apperrors.Internal("Failed to count hotels", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		hotels, errFind = s.hotelRepo.Find(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list hotels", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve hotels", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return hotels, count, nil
}

func (s *hotelService) GetHotel(ctx context.Context, id string) (*model.Hotel, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Hotel ID cannot be empty")
	}

	hotel, err := s.hotelRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, hotelerrors.ErrHotelNotFound) {
			return nil, apperrors.NotFoundWithID("Hotel", id)
		}
		return nil, apperrors.Internal("Failed to retrieve hotel", err)
	}
	return hotel, nil
}

func (s *hotelService) SearchHotels(ctx context.Context, req *model.HotelSearchRequest) ([]*model.Hotel, error) {
	req.City = sanitizer.NormalizeCity(req.City)

	if err := s.validator.ValidateSearch(req); err != nil {
		s.cfg.Log.Warn("Hotel search validation failed", "error", err)
		return nil, apperrors.Validation("Hotel search validation failed", map[string]any{"error": err.Error()})
	}

	filter := repository.HotelFilter{City: req.City, MinStars: req.MinStars}
	hotels, err := s.hotelRepo.Find(ctx, filter, config.DefaultPaginationLimit, 0)
	if err != nil {
		s.cfg.Log.Error("Failed to search hotels", "error", err)
		return nil, apperrors.Internal("Failed to search hotels", err)
	}
	return hotels, nil
}

func (s *hotelService) CreateRoom(ctx context.Context, room *model.Room) error {
	room.Name = sanitizer.TrimAndNormalize(room.Name)
	room.Description = sanitizer.TrimAndNormalize(room.Description)

	if err := s.validator.ValidateRoom(room); err != nil {
		s.cfg.Log.Warn("Room validation failed", "error", err)
		return apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.hotelRepo.FindByID(ctx, room.HotelID); err != nil {
		if errors.Is(err, hotelerrors.ErrHotelNotFound) {
			return apperrors.NotFoundWithID("Hotel", room.HotelID)
		}
		return apperrors.Internal("Failed to verify hotel", err)
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		s.cfg.Log.Error("Failed to create room", "error", err)
		return apperrors.Internal("Failed to create room", err)
	}

	s.cfg.Log.Info("Room created", "id", room.ID, "hotel_id", room.HotelID)
	return nil
}

func (s *hotelService) ListRooms(ctx context.Context, hotelID string) ([]*model.Room, error) {
	if hotelID == "" {
		return nil, apperrors.InvalidInput("Hotel ID cannot be empty")
	}

	if _, err := s.hotelRepo.FindByID(ctx, hotelID); err != nil {
		if errors.Is(err, hotelerrors.ErrHotelNotFound) {
			return nil, apperrors.NotFoundWithID("Hotel", hotelID)
		}
		return nil, apperrors.Internal("Failed to verify hotel", err)
	}

	rooms, err := s.roomRepo.FindByHotel(ctx, hotelID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}
	return rooms, nil
}

func (s *hotelService) CreateBooking(ctx context.Context, userID string, booking *model.HotelBooking) error {
	if userID == "" {
		return apperrors.Unauthorized("Missing caller identity")
	}
	booking.UserID = userID
	booking.Status = model.HotelBookingActive
	booking.SpecialRequests = sanitizer.TrimAndNormalize(booking.SpecialRequests)

	if err := s.validator.ValidateBooking(booking); err != nil {
		s.cfg.Log.Warn("Hotel booking validation failed", "error", err)
		return apperrors.Validation("Hotel booking validation failed", map[string]any{"error": err.Error()})
	}

	if !booking.CheckOutDate.After(booking.CheckInDate) {
		return apperrors.Validation("Check-out must be after check-in", map[string]any{
			"check_in_date":  booking.CheckInDate,
			"check_out_date": booking.CheckOutDate,
		})
	}

	room, err := s.roomRepo.FindByID(ctx, booking.RoomID)
	if err != nil {
		if errors.Is(err, hotelerrors.ErrRoomNotFound) {
			return apperrors.NotFoundWithID("Room", booking.RoomID)
		}
		return apperrors.Internal("Failed to verify room", err)
	}
	booking.HotelID = room.HotelID

	nights := nightCount(booking.CheckInDate, booking.CheckOutDate)
	booking.TotalPrice = float64(nights) * room.PricePerNight

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create hotel booking", "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Hotel booking created",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"nights", nights,
		"total_price", booking.TotalPrice,
	)
	return nil
}

func (s *hotelService) ListMyBookings(ctx context.Context, userID string) ([]*model.HotelBooking, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("Missing caller identity")
	}

	bookings, err := s.bookingRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// nightCount rounds down to whole nights; stays shorter than a day are
// charged one night.
func nightCount(checkIn, checkOut time.Time) int {
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		return 1
	}
	return nights
}
