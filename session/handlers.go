package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"skyfare/models"
	"skyfare/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler exposes one session's operations over HTTP.
type Handler struct {
	session *Session
}

func NewHandler(s *Session) *Handler {
	return &Handler{session: s}
}

func (h *Handler) GetFlights(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, h.session.Flights())
}

func (h *Handler) GetFlight(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	flight, err := h.session.Flight(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "flight not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, flight)
}

// TrackView records a view; unknown ids still return 204 since the
// operation is defined as a no-op for them.
func (h *Handler) TrackView(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.session.TrackView(ps.ByName("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetPrice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	flight, err := h.session.Flight(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "flight not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"price":           flight.EffectivePrice(),
		"priceMultiplier": flight.PriceMultiplier,
	})
}

func (h *Handler) GetWallet(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"sessionId": h.session.ID,
		"balance":   h.session.Wallet(),
	})
}

type bookRequest struct {
	FlightID    string             `json:"flightId"`
	Passengers  []models.Passenger `json:"passengers"`
	From        string             `json:"from"`
	To          string             `json:"to"`
	JourneyDate string             `json:"journeyDate"`
}

func (h *Handler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	journeyDate, err := time.Parse("2006-01-02", req.JourneyDate)
	if err != nil {
		journeyDate, _ = time.Parse(time.RFC3339, req.JourneyDate)
	}
	booking, err := h.session.Book(r.Context(), req.FlightID, req.Passengers, req.From, req.To, journeyDate)
	switch {
	case err == nil:
		utils.RespondWithJSON(w, http.StatusCreated, utils.M{"booking": booking})
	case errors.Is(err, ErrFlightNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "flight not found")
	case errors.Is(err, ErrNoPassengers), errors.Is(err, ErrBadPassenger), errors.Is(err, ErrInsufficient):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func (h *Handler) GetBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, h.session.Bookings())
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.session.Booking(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "booking not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, booking)
}
