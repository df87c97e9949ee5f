package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventify/internal/delivery/http/controllers"
	"eventify/internal/delivery/http/middleware"
	"eventify/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// The check-in route is deliberately left unauthenticated so physical
// ticket scanners can call it without a session.
func NewRouter(
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	registrationController *controllers.RegistrationController,
	analyticsController *controllers.AnalyticsController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.HandleFunc("GET /users/me", auth(authController.Me))
	mux.HandleFunc("GET /users/me/registrations", auth(registrationController.ListMyRegistrations))

	// Venues
	mux.HandleFunc("POST /venues", auth(eventController.CreateVenue))
	mux.HandleFunc("GET /venues", auth(eventController.ListVenues))

	// Events
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("GET /events", auth(eventController.ListEvents))
	mux.HandleFunc("GET /events/mine", auth(eventController.ListMyEvents))
	mux.HandleFunc("GET /events/{eventID}", auth(eventController.GetEvent))
	mux.HandleFunc("PUT /events/{eventID}", auth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.DeleteEvent))

	// Registrations and check-in
	mux.HandleFunc("POST /events/{eventID}/registrations", auth(registrationController.Register))
	mux.HandleFunc("GET /events/{eventID}/registrations", auth(registrationController.ListEventRegistrations))
	mux.HandleFunc("POST /events/checkin/{eventID}/{userID}", registrationController.CheckIn)

	// Analytics
	mux.HandleFunc("GET /events/{eventID}/stats", auth(analyticsController.Stats))
	mux.HandleFunc("GET /events/{eventID}/distribution/{dimension}", auth(analyticsController.Distribution))
	mux.HandleFunc("GET /events/{eventID}/checkin-distribution", auth(analyticsController.CheckinDistribution))
	mux.HandleFunc("GET /events/{eventID}/analytics", auth(analyticsController.Comprehensive))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
