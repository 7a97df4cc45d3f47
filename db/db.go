package db

import (
	"context"
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	FlightsCollection  *mongo.Collection
	BookingsCollection *mongo.Collection
	Client             *mongo.Client
)

// Init connects to MongoDB and wires the collection handles. Call once
// from main before serving; Close releases the client on shutdown.
func Init(ctx context.Context) error {
	uri := os.Getenv("MONGODB_STRING")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	Client = client
	FlightsCollection = client.Database("flightDB").Collection("flights")
	BookingsCollection = client.Database("flightDB").Collection("bookings")
	return nil
}

func Close(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
