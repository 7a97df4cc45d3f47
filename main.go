package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skyfare/airports"
	"skyfare/bookings"
	"skyfare/db"
	"skyfare/flights"
	"skyfare/pricing"
	"skyfare/ratelim"
	"skyfare/routes"
	"skyfare/session"
	"skyfare/utils"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Health is a simple health check handler.
func Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "OK",
		"message": "server is up and running!",
	})
}

func setupRouter(rl *ratelim.RateLimiter, sessHandler *session.Handler, hub *pricing.Hub, airportHandler *airports.Handler) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Health)

	routes.AddFlightRoutes(router, rl)
	routes.AddBookingRoutes(router, rl)
	routes.AddAirportRoutes(router, rl, airportHandler)
	routes.AddSessionRoutes(router, rl, sessHandler, hub)

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":5000"
	} else if port[0] != ':' {
		port = ":" + port
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.Init(ctx); err != nil {
		cancel()
		log.Fatalf("database init failed: %v", err)
	}
	cancel()

	if os.Getenv("SEED_FLIGHTS") == "1" {
		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := flights.SeedIfEmpty(seedCtx, db.FlightsCollection, 50); err != nil {
			log.Printf("seeding failed: %v", err)
		}
		cancel()
	}

	rateLimiter := ratelim.NewRateLimiter()
	airportHandler := airports.NewHandler(airports.NewClient(airports.InitRedis()))

	// one session per server instance: catalog snapshot, wallet, pricing engine
	sessCtx, sessCancel := context.WithTimeout(context.Background(), 10*time.Second)
	sess, err := session.New(sessCtx, flights.NewCatalog(db.FlightsCollection), bookings.NewStore(db.BookingsCollection), 10)
	sessCancel()
	if err != nil {
		log.Fatalf("session init failed: %v", err)
	}

	hub := pricing.NewHub()
	sess.Engine().SetNotifier(hub.Publish)

	router := setupRouter(rateLimiter, session.NewHandler(sess), hub, airportHandler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		log.Println("Stopping pricing engine...")
		sess.Close()
	})

	go func() {
		log.Printf("Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		log.Printf("closing MongoDB: %v", err)
	}

	log.Println("Server stopped cleanly")
}
