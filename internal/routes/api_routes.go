package routes

import (
	"pilotconnect/internal/api"
	"pilotconnect/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, deps *api.Dependencies, limiter *middleware.RateLimiter) {

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(limiter.Middleware)

		// Public
		v1.Post("/auth/register", handlers.Register())
		v1.Post("/auth/login", handlers.Login())
		v1.Get("/events", handlers.ListUpcomingEvents())
		v1.Get("/events/{event_id}", handlers.GetEvent())

		// Authenticated
		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.AuthMiddleware(deps.Services.Tokens))

			authed.Post("/auth/logout", handlers.Logout())

			authed.Get("/airports", handlers.ListAirports())
			authed.Get("/airports/my-state", handlers.MyStateAirports())
			authed.Get("/airports/{icao}", handlers.GetAirport())

			authed.Get("/profile", handlers.GetProfile())
			authed.Put("/profile", handlers.UpdateProfile())
			authed.Post("/profile/touch", handlers.TouchProfile())

			authed.Get("/pilots", handlers.ListPilots())
			authed.Get("/pilots/{user_id}", handlers.GetPilot())
			authed.Get("/matches", handlers.ListPredicates())
			authed.Get("/matches/{predicate}", handlers.Match())

			authed.Get("/messages/inbox", handlers.Inbox())
			authed.Get("/messages/sent", handlers.Sent())
			authed.Post("/messages", handlers.SendMessage())
			authed.Post("/messages/{message_id}/reply", handlers.ReplyMessage())
			authed.Delete("/messages/{message_id}", handlers.DeleteMessage())

			authed.Get("/events/hosted", handlers.HostedEvents())
			authed.Get("/events/nearby", handlers.NearbyEvents())
			authed.Post("/events", handlers.CreateEvent())
			authed.Put("/events/{event_id}", handlers.UpdateEvent())
			authed.Delete("/events/{event_id}", handlers.DeleteEvent())
		})
	})
}
