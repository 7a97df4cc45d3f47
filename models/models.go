package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Flight is a catalog entry. Price is in whole currency units; the
// effective fare is Price scaled by PriceMultiplier (1.0 or 1.1).
type Flight struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FlightName      string             `bson:"flightName" json:"flightName"`
	FlightNo        string             `bson:"flightNo" json:"flightNo"`
	DepartureTime   string             `bson:"departureTime" json:"departureTime"`
	ArrivalTime     string             `bson:"arrivalTime" json:"arrivalTime"`
	Duration        string             `bson:"duration" json:"duration"`
	Price           int                `bson:"price" json:"price"`
	PriceMultiplier float64            `bson:"priceMultiplier,omitempty" json:"priceMultiplier"`
}

// EffectivePrice is the per-seat fare with the current multiplier applied.
func (f Flight) EffectivePrice() int {
	m := f.PriceMultiplier
	if m == 0 {
		m = 1
	}
	return int(float64(f.Price)*m + 0.5)
}

type Passenger struct {
	Name   string `bson:"name" json:"name"`
	Age    string `bson:"age" json:"age"`
	Gender string `bson:"gender,omitempty" json:"gender,omitempty"`
}

// Booking snapshots the flight (including the multiplier in effect at
// submission time) and is immutable once persisted.
type Booking struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Flight      Flight             `bson:"flight" json:"flight"`
	Passengers  []Passenger        `bson:"passengers" json:"passengers"`
	From        string             `bson:"from" json:"from"`
	To          string             `bson:"to" json:"to"`
	TotalPrice  int                `bson:"totalPrice,omitempty" json:"totalPrice,omitempty"`
	Date        time.Time          `bson:"date" json:"date"`
	JourneyDate time.Time          `bson:"journeyDate" json:"journeyDate"`
}

// AirportMatch is one hit from the airport lookup collaborator.
type AirportMatch struct {
	IataCode    string `json:"iataCode"`
	Name        string `json:"name"`
	CityName    string `json:"cityName"`
	CountryName string `json:"countryName"`
}
