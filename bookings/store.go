package bookings

import (
	"context"

	"skyfare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store persists bookings in the bookings collection; it backs the
// session's BookingStore.
type Store struct {
	coll *mongo.Collection
}

func NewStore(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

// Insert persists the booking and returns it with its assigned id.
func (s *Store) Insert(ctx context.Context, b models.Booking) (models.Booking, error) {
	res, err := s.coll.InsertOne(ctx, b)
	if err != nil {
		return models.Booking{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return b, nil
}

// All lists every persisted booking.
func (s *Store) All(ctx context.Context) ([]models.Booking, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Booking
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one booking by id.
func (s *Store) Get(ctx context.Context, id primitive.ObjectID) (models.Booking, error) {
	var b models.Booking
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	return b, err
}
