package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	hotelerrors "rihla/internal/hotels/errors"
	"rihla/internal/hotels/repository"
	"rihla/internal/hotels/validator"
	"rihla/pkg/config"
	apperrors "rihla/pkg/errors"
	"rihla/pkg/logger"
	"rihla/pkg/model"
)

type mockHotelRepo struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Hotel, error)
	findFunc     func(ctx context.Context, filter repository.HotelFilter, limit int, offset int64) ([]*model.Hotel, error)
}

func (m *mockHotelRepo) Create(ctx context.Context, hotel *model.Hotel) error { return nil }

func (m *mockHotelRepo) FindByID(ctx context.Context, id string) (*model.Hotel, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.Hotel{ID: id, Name: "Test Hotel", City: "algiers"}, nil
}

func (m *mockHotelRepo) Find(ctx context.Context, filter repository.HotelFilter, limit int, offset int64) ([]*model.Hotel, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, filter, limit, offset)
	}
	return []*model.Hotel{}, nil
}

func (m *mockHotelRepo) Count(ctx context.Context, filter repository.HotelFilter) (int64, error) {
	return 0, nil
}

type mockRoomRepo struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Room, error)
}

func (m *mockRoomRepo) Create(ctx context.Context, room *model.Room) error { return nil }

func (m *mockRoomRepo) FindByID(ctx context.Context, id string) (*model.Room, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, hotelerrors.ErrRoomNotFound
}

func (m *mockRoomRepo) FindByHotel(ctx context.Context, hotelID string) ([]*model.Room, error) {
	return []*model.Room{}, nil
}

type mockHotelBookingRepo struct {
	createFunc func(ctx context.Context, booking *model.HotelBooking) error
}

func (m *mockHotelBookingRepo) Create(ctx context.Context, booking *model.HotelBooking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = "hb-1"
	return nil
}

func (m *mockHotelBookingRepo) FindByUser(ctx context.Context, userID string) ([]*model.HotelBooking, error) {
	return []*model.HotelBooking{}, nil
}

func newTestHotelService(hotel *mockHotelRepo, room *mockRoomRepo, booking *mockHotelBookingRepo) HotelService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.FormatJSON,
			Service: "test",
		}),
	}
	return &hotelService{
		hotelRepo:   hotel,
		roomRepo:    room,
		bookingRepo: booking,
		validator:   validator.NewHotelValidator(),
		cfg:         cfg,
	}
}

func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateBooking_PriceIsNightsTimesRate(t *testing.T) {
	roomRepo := &mockRoomRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return &model.Room{ID: id, HotelID: "hotel-1", Name: "Double", PricePerNight: 9000, Capacity: 2}, nil
		},
	}
	svc := newTestHotelService(&mockHotelRepo{}, roomRepo, &mockHotelBookingRepo{})

	booking := &model.HotelBooking{
		HotelID:      "hotel-claimed",
		RoomID:       "room-1",
		CheckInDate:  day(10),
		CheckOutDate: day(13),
		GuestsCount:  2,
	}
	if err := svc.CreateBooking(context.Background(), "user-1", booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.TotalPrice != 27000 {
		t.Errorf("expected 3 nights x 9000 = 27000, got %.2f", booking.TotalPrice)
	}
	if booking.HotelID != "hotel-1" {
		t.Errorf("hotel id must be reconciled from the room, got %s", booking.HotelID)
	}
	if booking.Status != model.HotelBookingActive {
		t.Errorf("expected active status, got %s", booking.Status)
	}
}

func TestCreateBooking_CheckOutBeforeCheckIn(t *testing.T) {
	svc := newTestHotelService(&mockHotelRepo{}, &mockRoomRepo{}, &mockHotelBookingRepo{})

	booking := &model.HotelBooking{
		RoomID:       "room-1",
		HotelID:      "hotel-1",
		CheckInDate:  day(13),
		CheckOutDate: day(10),
		GuestsCount:  1,
	}
	err := svc.CreateBooking(context.Background(), "user-1", booking)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.HTTPStatus != http.StatusUnprocessableEntity {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateBooking_UnknownRoom(t *testing.T) {
	svc := newTestHotelService(&mockHotelRepo{}, &mockRoomRepo{}, &mockHotelBookingRepo{})

	booking := &model.HotelBooking{
		RoomID:       "ghost",
		HotelID:      "hotel-1",
		CheckInDate:  day(10),
		CheckOutDate: day(11),
		GuestsCount:  1,
	}
	err := svc.CreateBooking(context.Background(), "user-1", booking)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestNightCount_ShortStayChargedOneNight(t *testing.T) {
	checkIn := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 9, 11, 10, 0, 0, 0, time.UTC)
	if got := nightCount(checkIn, checkOut); got != 1 {
		t.Errorf("expected 1 night, got %d", got)
	}
}

func TestGetHotel_NotFound(t *testing.T) {
	hotelRepo := &mockHotelRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Hotel, error) {
			return nil, hotelerrors.ErrHotelNotFound
		},
	}
	svc := newTestHotelService(hotelRepo, &mockRoomRepo{}, &mockHotelBookingRepo{})

	_, err := svc.GetHotel(context.Background(), "missing")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
