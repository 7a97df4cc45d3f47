package routes

import (
	"skyfare/airports"
	"skyfare/bookings"
	"skyfare/flights"
	"skyfare/pricing"
	"skyfare/ratelim"
	"skyfare/session"

	"github.com/julienschmidt/httprouter"
)

func AddFlightRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/flights", rl.Limit(flights.GetFlights))
}

func AddBookingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/bookings", rl.Limit(bookings.CreateBooking))
	router.GET("/api/bookings", rl.Limit(bookings.GetBookings))
	router.GET("/api/bookings/:id", rl.Limit(bookings.GetBooking))
	router.GET("/api/bookings/:id/ticket", rl.Limit(bookings.PrintTicket))
}

func AddAirportRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *airports.Handler) {
	router.GET("/api/airports", rl.Limit(h.Search))
}

func AddSessionRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *session.Handler, hub *pricing.Hub) {
	router.GET("/api/session/flights", rl.Limit(h.GetFlights))
	router.GET("/api/session/flights/:id", rl.Limit(h.GetFlight))
	router.POST("/api/session/flights/:id/view", rl.Limit(h.TrackView))
	router.GET("/api/session/flights/:id/price", rl.Limit(h.GetPrice))
	router.GET("/api/session/wallet", rl.Limit(h.GetWallet))
	router.POST("/api/session/bookings", rl.Limit(h.Book))
	router.GET("/api/session/bookings", rl.Limit(h.GetBookings))
	router.GET("/api/session/bookings/:id", rl.Limit(h.GetBooking))
	router.GET("/api/session/price-stream", hub.HandleWS)
}
