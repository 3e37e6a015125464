package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	catalogerrors "rihla/internal/catalog/errors"
	reserrors "rihla/internal/reservations/errors"
	"rihla/internal/reservations/validator"
	"rihla/pkg/config"
	mongotx "rihla/pkg/db/mongo"
	apperrors "rihla/pkg/errors"
	"rihla/pkg/logger"
	"rihla/pkg/model"
)

// fakeStore is an in-memory stand-in for the seat, trip and booking
// collections. ClaimSeat and ReleaseSeat keep the conditional-update
// semantics of the real repositories: the flip only happens if the seat is
// in the expected state when the lock is held.
type fakeStore struct {
	mu       sync.Mutex
	trips    map[string]*model.Trip
	seats    map[string]*model.Seat
	bookings map[string]*model.TicketBooking
	nextID   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		trips:    map[string]*model.Trip{},
		seats:    map[string]*model.Seat{},
		bookings: map[string]*model.TicketBooking{},
	}
}

func (s *fakeStore) addTrip(trip *model.Trip) {
	s.trips[trip.ID] = trip
	for i := 1; i <= trip.TotalSeats; i++ {
		num := fmt.Sprintf("%d", i)
		s.seats[trip.ID+"|"+num] = &model.Seat{
			TripID:      trip.ID,
			SeatNumber:  num,
			IsAvailable: true,
			Price:       trip.Price,
		}
	}
}

func (s *fakeStore) activeBookings(tripID string) int {
	count := 0
	for _, b := range s.bookings {
		if b.TripID == tripID && b.Status == model.TicketBookingActive {
			count++
		}
	}
	return count
}

type fakeSeatRepo struct{ store *fakeStore }

func (r *fakeSeatRepo) InsertMany(ctx context.Context, seats []*model.Seat) error { return nil }

func (r *fakeSeatRepo) FindByTrip(ctx context.Context, tripID string) ([]*model.Seat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*model.Seat
	for _, seat := range r.store.seats {
		if seat.TripID == tripID {
			out = append(out, seat)
		}
	}
	return out, nil
}

func (r *fakeSeatRepo) FindByTripAndNumber(ctx context.Context, tripID, seatNumber string) (*model.Seat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	seat, ok := r.store.seats[tripID+"|"+seatNumber]
	if !ok {
		return nil, catalogerrors.ErrSeatNotFound
	}
	copied := *seat
	return &copied, nil
}

func (r *fakeSeatRepo) ClaimSeat(ctx context.Context, tripID, seatNumber string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	seat, ok := r.store.seats[tripID+"|"+seatNumber]
	if !ok || !seat.IsAvailable {
		return false, nil
	}
	seat.IsAvailable = false
	return true, nil
}

func (r *fakeSeatRepo) ReleaseSeat(ctx context.Context, tripID, seatNumber string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	seat, ok := r.store.seats[tripID+"|"+seatNumber]
	if !ok || seat.IsAvailable {
		return false, nil
	}
	seat.IsAvailable = true
	return true, nil
}

func (r *fakeSeatRepo) CountAvailableByTrip(ctx context.Context, tripID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, seat := range r.store.seats {
		if seat.TripID == tripID && seat.IsAvailable {
			count++
		}
	}
	return count, nil
}

type fakeTripRepo struct{ store *fakeStore }

func (r *fakeTripRepo) Create(ctx context.Context, trip *model.Trip) error { return nil }

func (r *fakeTripRepo) FindByID(ctx context.Context, id string) (*model.Trip, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	trip, ok := r.store.trips[id]
	if !ok {
		return nil, catalogerrors.ErrTripNotFound
	}
	copied := *trip
	return &copied, nil
}

func (r *fakeTripRepo) FindDepartures(ctx context.Context, routeIDs []string, dayStart, dayEnd time.Time, minAvailableSeats int) ([]*model.Trip, error) {
	return []*model.Trip{}, nil
}

func (r *fakeTripRepo) SetSeatInventory(ctx context.Context, tripID string, totalSeats int) error {
	return nil
}

func (r *fakeTripRepo) IncrementAvailableSeats(ctx context.Context, tripID string, delta int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	trip, ok := r.store.trips[tripID]
	if !ok {
		return catalogerrors.ErrTripNotFound
	}
	trip.AvailableSeats += delta
	return nil
}

type fakeRouteRepo struct {
	routes map[string]*model.Route
}

func (r *fakeRouteRepo) Create(ctx context.Context, route *model.Route) error { return nil }

func (r *fakeRouteRepo) FindByID(ctx context.Context, id string) (*model.Route, error) {
	if route, ok := r.routes[id]; ok {
		return route, nil
	}
	return nil, catalogerrors.ErrRouteNotFound
}

func (r *fakeRouteRepo) FindByIDs(ctx context.Context, ids []string) (map[string]*model.Route, error) {
	return r.routes, nil
}

func (r *fakeRouteRepo) FindByCities(ctx context.Context, origin, destination string) ([]*model.Route, error) {
	return []*model.Route{}, nil
}

func (r *fakeRouteRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Route, error) {
	return []*model.Route{}, nil
}

func (r *fakeRouteRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

type fakeCompanyRepo struct {
	companies map[string]*model.Company
}

func (r *fakeCompanyRepo) Create(ctx context.Context, company *model.Company) error { return nil }

func (r *fakeCompanyRepo) FindByID(ctx context.Context, id string) (*model.Company, error) {
	if company, ok := r.companies[id]; ok {
		return company, nil
	}
	return nil, catalogerrors.ErrCompanyNotFound
}

func (r *fakeCompanyRepo) FindByIDs(ctx context.Context, ids []string) (map[string]*model.Company, error) {
	return r.companies, nil
}

func (r *fakeCompanyRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Company, error) {
	return []*model.Company{}, nil
}

func (r *fakeCompanyRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

type fakeBookingRepo struct{ store *fakeStore }

func (r *fakeBookingRepo) Create(ctx context.Context, booking *model.TicketBooking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextID++
	booking.ID = fmt.Sprintf("booking-%d", r.store.nextID)
	booking.CreatedAt = time.Now().UTC()
	booking.UpdatedAt = booking.CreatedAt
	copied := *booking
	r.store.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) FindByIDAndUser(ctx context.Context, id, userID string) (*model.TicketBooking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	booking, ok := r.store.bookings[id]
	if !ok || booking.UserID != userID {
		return nil, reserrors.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) FindByUser(ctx context.Context, userID string) ([]*model.TicketBooking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*model.TicketBooking
	for _, booking := range r.store.bookings {
		if booking.UserID == userID {
			copied := *booking
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) SetStatus(ctx context.Context, id, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	booking, ok := r.store.bookings[id]
	if !ok {
		return reserrors.ErrBookingNotFound
	}
	booking.Status = status
	booking.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeBookingRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.FormatJSON,
			Service: "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func newTestService(store *fakeStore) ReservationService {
	return &reservationService{
		bookingRepo: &fakeBookingRepo{store: store},
		tripRepo:    &fakeTripRepo{store: store},
		seatRepo:    &fakeSeatRepo{store: store},
		routeRepo:   &fakeRouteRepo{routes: map[string]*model.Route{}},
		companyRepo: &fakeCompanyRepo{companies: map[string]*model.Company{}},
		validator:   validator.NewBookingValidator(),
		cfg:         testConfig(),
	}
}

func testTrip(id string, totalSeats int) *model.Trip {
	return &model.Trip{
		ID:             id,
		RouteID:        "route-1",
		CompanyID:      "company-1",
		BusType:        model.BusTypeStandard,
		AvailableSeats: totalSeats,
		TotalSeats:     totalSeats,
		Price:          500,
	}
}

func newBooking(tripID, seat string) *model.TicketBooking {
	return &model.TicketBooking{
		TripID:         tripID,
		SeatNumber:     seat,
		PassengerName:  "Amine Benali",
		PassengerPhone: "0550123456",
	}
}

func TestBook_ConcurrentClaimsOneWinner(t *testing.T) {
	store := newFakeStore()
	store.addTrip(testTrip("trip-1", 50))
	svc := newTestService(store)

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			results <- svc.Book(context.Background(), fmt.Sprintf("user-%d", n), newBooking("trip-1", "7"))
		}(i)
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case apperrors.AsAppError(err) != nil && apperrors.AsAppError(err).HTTPStatus == http.StatusConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("expected exactly 1 successful booking, got %d", successes)
	}
	if conflicts != attempts-1 {
		t.Errorf("expected %d conflicts, got %d", attempts-1, conflicts)
	}
	if got := store.trips["trip-1"].AvailableSeats; got != 49 {
		t.Errorf("expected 49 available seats, got %d", got)
	}
}

func TestBook_AvailabilityInvariant(t *testing.T) {
	store := newFakeStore()
	store.addTrip(testTrip("trip-1", 10))
	svc := newTestService(store)

	for _, seat := range []string{"1", "2", "3"} {
		if err := svc.Book(context.Background(), "user-1", newBooking("trip-1", seat)); err != nil {
			t.Fatalf("booking seat %s: %v", seat, err)
		}
	}

	trip := store.trips["trip-1"]
	if trip.AvailableSeats != trip.TotalSeats-store.activeBookings("trip-1") {
		t.Errorf("invariant broken: available=%d total=%d active=%d",
			trip.AvailableSeats, trip.TotalSeats, store.activeBookings("trip-1"))
	}
}

func TestBook_UnknownTrip(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	err := svc.Book(context.Background(), "user-1", newBooking("missing", "1"))
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestBook_UnknownSeat(t *testing.T) {
	store := newFakeStore()
	store.addTrip(testTrip("trip-1", 10))
	svc := newTestService(store)

	err := svc.Book(context.Background(), "user-1", newBooking("trip-1", "99"))
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected NotFound for seat outside the map, got %v", err)
	}
}

func TestBook_PriceComesFromSeat(t *testing.T) {
	store := newFakeStore()
	store.addTrip(testTrip("trip-1", 5))
	svc := newTestService(store)

	booking := newBooking("trip-1", "2")
	booking.Price = 99999
	if err := svc.Book(context.Background(), "user-1", booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Price != 500 {
		t.Errorf("expected price 500 from the seat record, got %.2f", booking.Price)
	}
}

func TestCancel_RoundTrip(t *testing.T) {
	store := newFakeStore()
	store.addTrip(testTrip("trip-1", 10))
	svc := newTestService(store)

	booking := newBooking("trip-1", "4")
	if err := svc.Book(context.Background(), "user-1", booking); err != nil {
		t.Fatalf("book: %v", err)
	}
	if store.trips["trip-1"].AvailableSeats != 9 {
		t.Fatalf("expected 9 available after booking, got %d", store.trips["trip-1"].AvailableSeats)
	}

	canceled, err := svc.Cancel(context.Background(), "user-1", booking.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if canceled.Status != model.TicketBookingCanceled {
		t.Errorf("expected canceled status, got %s", canceled.Status)
	}
	if store.trips["trip-1"].AvailableSeats != 10 {
		t.Errorf("expected availability restored to 10, got %d", store.trips["trip-1"].AvailableSeats)
	}
	if !store.seats["trip-1|4"].IsAvailable {
		t.Error("expected seat 4 to be bookable again")
	}

	// The seat can be sold again after release.
	if err := svc.Book(context.Background(), "user-2", newBooking("trip-1", "4")); err != nil {
		t.Errorf("rebooking released seat: %v", err)
	}
}

func TestCancel_TwiceIsConflict(t *testing.T) {
	store := newFakeStore()
	store.addTrip(testTrip("trip-1", 10))
	svc := newTestService(store)

	booking := newBooking("trip-1", "1")
	if err := svc.Book(context.Background(), "user-1", booking); err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := svc.Cancel(context.Background(), "user-1", booking.ID); err != nil {
		t.Fatalf("first cancel: %v", err)
	}

	_, err := svc.Cancel(context.Background(), "user-1", booking.ID)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected Conflict on second cancel, got %v", err)
	}
	if store.trips["trip-1"].AvailableSeats != 10 {
		t.Errorf("second cancel must not touch the counter, got %d", store.trips["trip-1"].AvailableSeats)
	}
}

func TestCancel_OwnershipScoped(t *testing.T) {
	store := newFakeStore()
	store.addTrip(testTrip("trip-1", 10))
	svc := newTestService(store)

	booking := newBooking("trip-1", "3")
	if err := svc.Book(context.Background(), "user-1", booking); err != nil {
		t.Fatalf("book: %v", err)
	}

	_, err := svc.Cancel(context.Background(), "user-2", booking.ID)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected NotFound for someone else's booking, got %v", err)
	}
	if store.bookings[booking.ID].Status != model.TicketBookingActive {
		t.Error("booking must stay active after a foreign cancel attempt")
	}
}

func TestBook_TwoSeatsSameUser(t *testing.T) {
	store := newFakeStore()
	store.addTrip(testTrip("trip-1", 10))
	svc := newTestService(store)

	if err := svc.Book(context.Background(), "user-1", newBooking("trip-1", "5")); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if err := svc.Book(context.Background(), "user-1", newBooking("trip-1", "6")); err != nil {
		t.Fatalf("second booking: %v", err)
	}

	// Re-booking an already held seat still conflicts, even for the holder.
	err := svc.Book(context.Background(), "user-1", newBooking("trip-1", "5"))
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected Conflict, got %v", err)
	}
	if got := store.trips["trip-1"].AvailableSeats; got != 8 {
		t.Errorf("expected 8 available seats, got %d", got)
	}
}

func TestListMine_TripRemovedLeavesNullContext(t *testing.T) {
	store := newFakeStore()
	store.addTrip(testTrip("trip-1", 10))
	svc := newTestService(store)

	booking := newBooking("trip-1", "2")
	if err := svc.Book(context.Background(), "user-1", booking); err != nil {
		t.Fatalf("book: %v", err)
	}

	delete(store.trips, "trip-1")

	views, err := svc.ListMine(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(views))
	}
	if views[0].Booking == nil || views[0].Booking.ID != booking.ID {
		t.Error("booking itself must survive trip removal")
	}
	if views[0].Trip != nil || views[0].Route != nil || views[0].Company != nil {
		t.Error("trip context should be null when the trip is gone")
	}
}

func TestBook_PhoneNormalized(t *testing.T) {
	store := newFakeStore()
	store.addTrip(testTrip("trip-1", 10))
	svc := newTestService(store)

	booking := newBooking("trip-1", "8")
	booking.PassengerPhone = "0550 12 34 56"
	if err := svc.Book(context.Background(), "user-1", booking); err != nil {
		t.Fatalf("book: %v", err)
	}
	if booking.PassengerPhone != "+213550123456" {
		t.Errorf("expected E.164 phone, got %s", booking.PassengerPhone)
	}
}
