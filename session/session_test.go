package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"skyfare/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeCatalog struct {
	flights []models.Flight
}

func (f *fakeCatalog) Sample(ctx context.Context, n int) ([]models.Flight, error) {
	return f.flights, nil
}

type fakeStore struct {
	inserted []models.Booking
	fail     bool
}

func (f *fakeStore) Insert(ctx context.Context, b models.Booking) (models.Booking, error) {
	if f.fail {
		return models.Booking{}, errors.New("store down")
	}
	b.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, b)
	return b, nil
}

func (f *fakeStore) All(ctx context.Context) ([]models.Booking, error) {
	return f.inserted, nil
}

func testFlight(price int) models.Flight {
	return models.Flight{
		ID:            primitive.NewObjectID(),
		FlightName:    "AirJet",
		FlightNo:      "FL-1001",
		DepartureTime: "09:30",
		ArrivalTime:   "12:15",
		Duration:      "2h 45m",
		Price:         price,
	}
}

func newTestSession(t *testing.T, store BookingStore, flights ...models.Flight) *Session {
	t.Helper()
	s, err := New(context.Background(), &fakeCatalog{flights: flights}, store, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func passengers(n int) []models.Passenger {
	out := make([]models.Passenger, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Passenger{Name: "Asha Rao", Age: "34", Gender: "female"})
	}
	return out
}

func TestBookingSnapshotsSurgedPrice(t *testing.T) {
	flight := testFlight(2500)
	store := &fakeStore{}
	s := newTestSession(t, store, flight)
	id := flight.ID.Hex()

	s.TrackView(id)
	s.TrackView(id)
	s.TrackView(id)

	booking, err := s.Book(context.Background(), id, passengers(2), "Delhi", "Mumbai", time.Now().AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	// 2500 * 1.1 * 2 = 5500
	if booking.TotalPrice != 5500 {
		t.Fatalf("total = %d, want 5500", booking.TotalPrice)
	}
	if booking.Flight.PriceMultiplier != 1.1 {
		t.Fatalf("snapshot multiplier = %v, want 1.1", booking.Flight.PriceMultiplier)
	}
	if got := s.Wallet(); got != DefaultWallet-5500 {
		t.Fatalf("wallet = %d, want %d", got, DefaultWallet-5500)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("store received %d bookings, want 1", len(store.inserted))
	}
}

func TestBookingAtBasePrice(t *testing.T) {
	flight := testFlight(2500)
	store := &fakeStore{}
	s := newTestSession(t, store, flight)

	booking, err := s.Book(context.Background(), flight.ID.Hex(), passengers(1), "Delhi", "Goa", time.Now())
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if booking.TotalPrice != 2500 {
		t.Fatalf("total = %d, want 2500", booking.TotalPrice)
	}
	if booking.Flight.PriceMultiplier != 1.0 {
		t.Fatalf("snapshot multiplier = %v, want 1.0", booking.Flight.PriceMultiplier)
	}
}

func TestInsufficientBalanceSkipsStore(t *testing.T) {
	flight := testFlight(2500)
	store := &fakeStore{}
	s := newTestSession(t, store, flight)
	s.mu.Lock()
	s.wallet = 1000
	s.mu.Unlock()

	_, err := s.Book(context.Background(), flight.ID.Hex(), passengers(1), "Delhi", "Pune", time.Now())
	if !errors.Is(err, ErrInsufficient) {
		t.Fatalf("err = %v, want ErrInsufficient", err)
	}
	if len(store.inserted) != 0 {
		t.Fatal("store was called despite insufficient balance")
	}
	if got := s.Wallet(); got != 1000 {
		t.Fatalf("wallet = %d, want untouched 1000", got)
	}
}

func TestPassengerValidation(t *testing.T) {
	flight := testFlight(2500)
	store := &fakeStore{}
	s := newTestSession(t, store, flight)
	id := flight.ID.Hex()

	if _, err := s.Book(context.Background(), id, nil, "A", "B", time.Now()); !errors.Is(err, ErrNoPassengers) {
		t.Fatalf("empty list: err = %v, want ErrNoPassengers", err)
	}

	bad := []models.Passenger{{Name: "", Age: "30"}}
	if _, err := s.Book(context.Background(), id, bad, "A", "B", time.Now()); !errors.Is(err, ErrBadPassenger) {
		t.Fatalf("missing name: err = %v, want ErrBadPassenger", err)
	}

	bad = []models.Passenger{{Name: "X", Age: ""}}
	if _, err := s.Book(context.Background(), id, bad, "A", "B", time.Now()); !errors.Is(err, ErrBadPassenger) {
		t.Fatalf("missing age: err = %v, want ErrBadPassenger", err)
	}

	if len(store.inserted) != 0 {
		t.Fatal("store was called for invalid input")
	}
}

func TestStoreFailureLeavesStateAlone(t *testing.T) {
	flight := testFlight(2500)
	store := &fakeStore{fail: true}
	s := newTestSession(t, store, flight)

	_, err := s.Book(context.Background(), flight.ID.Hex(), passengers(1), "A", "B", time.Now())
	if err == nil {
		t.Fatal("expected error from failing store")
	}
	if got := s.Wallet(); got != DefaultWallet {
		t.Fatalf("wallet = %d, want untouched %d", got, DefaultWallet)
	}
	if len(s.Bookings()) != 0 {
		t.Fatal("session recorded a booking the store rejected")
	}
}

func TestUnknownFlight(t *testing.T) {
	s := newTestSession(t, &fakeStore{}, testFlight(2000))

	if _, err := s.Flight("000000000000000000000000"); !errors.Is(err, ErrFlightNotFound) {
		t.Fatalf("err = %v, want ErrFlightNotFound", err)
	}
	if _, err := s.Book(context.Background(), "000000000000000000000000", passengers(1), "A", "B", time.Now()); !errors.Is(err, ErrFlightNotFound) {
		t.Fatalf("Book err = %v, want ErrFlightNotFound", err)
	}
}

func TestFlightsReflectCurrentMultiplier(t *testing.T) {
	flight := testFlight(2000)
	s := newTestSession(t, &fakeStore{}, flight)
	id := flight.ID.Hex()

	for _, f := range s.Flights() {
		if f.PriceMultiplier != 1.0 {
			t.Fatalf("initial multiplier = %v, want 1.0", f.PriceMultiplier)
		}
	}

	s.TrackView(id)
	s.TrackView(id)
	s.TrackView(id)

	f, err := s.Flight(id)
	if err != nil {
		t.Fatalf("Flight: %v", err)
	}
	if f.PriceMultiplier != 1.1 {
		t.Fatalf("multiplier = %v, want 1.1", f.PriceMultiplier)
	}
	if f.EffectivePrice() != 2200 {
		t.Fatalf("effective price = %d, want 2200", f.EffectivePrice())
	}
}

func TestSessionBookingLookup(t *testing.T) {
	flight := testFlight(2100)
	s := newTestSession(t, &fakeStore{}, flight)

	saved, err := s.Book(context.Background(), flight.ID.Hex(), passengers(1), "A", "B", time.Now())
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	got, err := s.Booking(saved.ID.Hex())
	if err != nil {
		t.Fatalf("Booking: %v", err)
	}
	if got.ID != saved.ID {
		t.Fatalf("got booking %s, want %s", got.ID.Hex(), saved.ID.Hex())
	}

	if _, err := s.Booking("ffffffffffffffffffffffff"); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("err = %v, want ErrBookingNotFound", err)
	}
}
