package flights

import (
	"context"
	"net/http"
	"time"

	"skyfare/db"
	"skyfare/models"
	"skyfare/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// sampleSize is how many flights a catalog fetch returns.
const sampleSize = 10

// Catalog reads the flight collection; it backs the session's
// CatalogSource.
type Catalog struct {
	coll *mongo.Collection
}

func NewCatalog(coll *mongo.Collection) *Catalog {
	return &Catalog{coll: coll}
}

// Sample returns n random flights, multiplier initialized to 1.0.
func (c *Catalog) Sample(ctx context.Context, n int) ([]models.Flight, error) {
	cur, err := c.coll.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: n}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var flights []models.Flight
	if err := cur.All(ctx, &flights); err != nil {
		return nil, err
	}
	for i := range flights {
		flights[i].PriceMultiplier = 1
	}
	return flights, nil
}

// GetFlights handles GET /api/flights with a random sample of the catalog.
func GetFlights(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	flights, err := NewCatalog(db.FlightsCollection).Sample(ctx, sampleSize)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if flights == nil {
		flights = []models.Flight{}
	}
	utils.RespondWithJSON(w, http.StatusOK, flights)
}
