package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"skyfare/models"
	"skyfare/pricing"
	"skyfare/utils"
)

// DefaultWallet is the demo balance a fresh session starts with.
const DefaultWallet = 50000

var (
	ErrFlightNotFound  = errors.New("flight not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrNoPassengers    = errors.New("at least one passenger is required")
	ErrBadPassenger    = errors.New("every passenger needs a name and age")
	ErrInsufficient    = errors.New("insufficient wallet balance")
)

// CatalogSource supplies the flight snapshot a session starts from.
type CatalogSource interface {
	Sample(ctx context.Context, n int) ([]models.Flight, error)
}

// BookingStore persists bookings and assigns their identity.
type BookingStore interface {
	Insert(ctx context.Context, b models.Booking) (models.Booking, error)
	All(ctx context.Context) ([]models.Booking, error)
}

// Session owns one client session's state: the catalog snapshot fetched
// at start, the wallet, the pricing engine, and the bookings made so
// far. All mutation goes through its methods.
type Session struct {
	ID string

	mu       sync.Mutex
	flights  []models.Flight
	byID     map[string]int
	wallet   int
	bookings []models.Booking

	engine *pricing.Engine
	store  BookingStore
	now    func() time.Time
}

// New fetches a catalog snapshot of size n and builds the session
// around it. The engine sweep starts immediately; Close stops it.
func New(ctx context.Context, catalog CatalogSource, store BookingStore, n int) (*Session, error) {
	flights, err := catalog.Sample(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	ids := make([]string, 0, len(flights))
	byID := make(map[string]int, len(flights))
	for i := range flights {
		if flights[i].PriceMultiplier == 0 {
			flights[i].PriceMultiplier = 1
		}
		id := flights[i].ID.Hex()
		ids = append(ids, id)
		byID[id] = i
	}

	s := &Session{
		ID:      utils.GetUUID(),
		flights: flights,
		byID:    byID,
		wallet:  DefaultWallet,
		engine:  pricing.NewEngine(ids),
		store:   store,
		now:     time.Now,
	}
	s.engine.Start()
	return s, nil
}

// Engine exposes the pricing engine, e.g. to attach a notifier.
func (s *Session) Engine() *pricing.Engine { return s.engine }

// Close disposes the session's background work.
func (s *Session) Close() {
	s.engine.Stop()
}

// Flights returns the catalog snapshot with current multipliers applied.
func (s *Session) Flights() []models.Flight {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Flight, len(s.flights))
	copy(out, s.flights)
	for i := range out {
		out[i].PriceMultiplier = s.engine.Multiplier(out[i].ID.Hex())
	}
	return out
}

// Flight returns one catalog entry with its current multiplier.
func (s *Session) Flight(id string) (models.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flight(id)
}

func (s *Session) flight(id string) (models.Flight, error) {
	i, ok := s.byID[id]
	if !ok {
		return models.Flight{}, ErrFlightNotFound
	}
	f := s.flights[i]
	f.PriceMultiplier = s.engine.Multiplier(id)
	return f, nil
}

// TrackView records one view of the flight; unknown IDs are a no-op.
func (s *Session) TrackView(id string) {
	s.engine.RecordView(id)
}

// Wallet returns the remaining balance.
func (s *Session) Wallet() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wallet
}

// Book validates the request, snapshots the flight at its current
// effective price, persists the booking, and debits the wallet. Nothing
// is mutated when validation or the store call fails.
func (s *Session) Book(ctx context.Context, flightID string, passengers []models.Passenger, from, to string, journeyDate time.Time) (models.Booking, error) {
	if len(passengers) == 0 {
		return models.Booking{}, ErrNoPassengers
	}
	for _, p := range passengers {
		if p.Name == "" || p.Age == "" {
			return models.Booking{}, ErrBadPassenger
		}
	}

	s.mu.Lock()
	flight, err := s.flight(flightID)
	if err != nil {
		s.mu.Unlock()
		return models.Booking{}, err
	}
	total := flight.EffectivePrice() * len(passengers)
	if total > s.wallet {
		s.mu.Unlock()
		return models.Booking{}, ErrInsufficient
	}
	s.mu.Unlock()

	booking := models.Booking{
		Flight:      flight,
		Passengers:  passengers,
		From:        from,
		To:          to,
		TotalPrice:  total,
		Date:        s.now(),
		JourneyDate: journeyDate,
	}

	saved, err := s.store.Insert(ctx, booking)
	if err != nil {
		log.Println("booking submission failed:", err)
		return models.Booking{}, fmt.Errorf("submit booking: %w", err)
	}

	s.mu.Lock()
	s.wallet -= total
	s.bookings = append(s.bookings, saved)
	s.mu.Unlock()

	return saved, nil
}

// Bookings lists the bookings made during this session.
func (s *Session) Bookings() []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

// Booking returns one session booking by its identifier.
func (s *Session) Booking(id string) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID.Hex() == id {
			return b, nil
		}
	}
	return models.Booking{}, ErrBookingNotFound
}
