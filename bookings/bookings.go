package bookings

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"skyfare/db"
	"skyfare/models"
	"skyfare/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createRequest struct {
	Flight      models.Flight      `json:"flight"`
	Passengers  []models.Passenger `json:"passengers"`
	From        string             `json:"from"`
	To          string             `json:"to"`
	JourneyDate string             `json:"journeyDate"`
}

func parseJourneyDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// CreateBooking handles POST /api/bookings.
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	booking := models.Booking{
		Flight:      req.Flight,
		Passengers:  req.Passengers,
		From:        req.From,
		To:          req.To,
		Date:        time.Now(),
		JourneyDate: parseJourneyDate(req.JourneyDate),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	saved, err := NewStore(db.BookingsCollection).Insert(ctx, booking)
	if err != nil {
		log.Println("booking insert failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"booking": saved})
}

// GetBookings handles GET /api/bookings.
func GetBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	out, err := NewStore(db.BookingsCollection).All(ctx)
	if err != nil {
		log.Println("booking list failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if out == nil {
		out = []models.Booking{}
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// GetBooking handles GET /api/bookings/:id.
func GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	oid, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := NewStore(db.BookingsCollection).Get(ctx, oid)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "booking not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, b)
}
