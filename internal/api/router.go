package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/statushub/profiles-be/internal/api/handlers"
	"github.com/statushub/profiles-be/internal/auth"
	"github.com/statushub/profiles-be/internal/services"
	"github.com/statushub/profiles-be/internal/websocket"
)

// RouterDeps bundles everything the route table needs.
type RouterDeps struct {
	Hub        *websocket.Hub
	UserSvc    services.UserServiceProvider
	FeedSvc    services.FeedServiceProvider
	EventSvc   services.EventServiceProvider
	JWTSecret  []byte
	TokenTTL   time.Duration
	CORSOrigin string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(deps.UserSvc, deps.EventSvc, deps.JWTSecret, deps.TokenTTL)
	feedHandler := handlers.NewFeedHandler(deps.FeedSvc, deps.EventSvc, deps.Hub)
	helloHandler := handlers.NewHelloHandler()
	eventHandler := handlers.NewEventHandler(deps.EventSvc, deps.UserSvc)
	wsHandler := handlers.NewWebSocketHandler(deps.Hub)
	healthHandler := handlers.NewHealthHandler()

	requireAuth := auth.Middleware(deps.JWTSecret)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/users", userHandler.Register)
		r.Post("/login", userHandler.Login)

		// Demonstration endpoint, one handler per method
		r.Route("/hello", func(r chi.Router) {
			r.Get("/", helloHandler.Get)
			r.Post("/", helloHandler.Post)
			r.Put("/", helloHandler.Put)
			r.Patch("/", helloHandler.Patch)
			r.Delete("/", helloHandler.Delete)
		})

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/me", userHandler.GetMe)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", userHandler.Get)
					r.Put("/", userHandler.Update)
					r.Patch("/", userHandler.Patch)
				})
			})

			r.Route("/feed", func(r chi.Router) {
				r.Get("/", feedHandler.List)
				r.Post("/", feedHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", feedHandler.Get)
					r.Put("/", feedHandler.Update)
					r.Patch("/", feedHandler.Patch)
					r.Delete("/", feedHandler.Delete)
				})
			})

			r.Get("/events", eventHandler.GetRecent)

			// Live feed stream
			r.Get("/ws/feed", wsHandler.Serve)
		})
	})

	return r
}
