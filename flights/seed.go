package flights

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"skyfare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var airlineNames = []string{"AirJet", "SkyWays", "BlueAir", "JetStream", "GoFly", "ZoomAir", "SkyNet"}

// Generate builds n random catalog entries: FL-numbered flights with
// random clock times, a 1-5h duration, and a base price of 2000-3000.
func Generate(n int) []models.Flight {
	flights := make([]models.Flight, 0, n)
	for i := 1; i <= n; i++ {
		depH := rand.Intn(20)
		depM := rand.Intn(60)
		durH := 1 + rand.Intn(5)
		durM := rand.Intn(60)
		arrH := depH + durH
		if arrH > 23 {
			arrH = 23
		}
		arrM := (depM + durM) % 60

		flights = append(flights, models.Flight{
			FlightName:      airlineNames[rand.Intn(len(airlineNames))],
			FlightNo:        fmt.Sprintf("FL-%d", 1000+i),
			DepartureTime:   fmt.Sprintf("%02d:%02d", depH, depM),
			ArrivalTime:     fmt.Sprintf("%02d:%02d", arrH, arrM),
			Duration:        fmt.Sprintf("%dh %dm", durH, durM),
			Price:           2000 + rand.Intn(1001),
			PriceMultiplier: 1,
		})
	}
	return flights
}

// SeedIfEmpty inserts a generated catalog when the collection has no
// documents yet.
func SeedIfEmpty(ctx context.Context, coll *mongo.Collection, n int) error {
	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count flights: %w", err)
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, n)
	for _, f := range Generate(n) {
		docs = append(docs, f)
	}
	res, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("seed flights: %w", err)
	}
	log.Printf("Seeded %d flights", len(res.InsertedIDs))
	return nil
}
