package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/pkordes/travel-planner/internal/middleware"
)

// RouterOptions tunes the middleware stack.
type RouterOptions struct {
	CORSOrigins   []string
	MaxBodyBytes  int64
	AuthRateLimit int // register/login attempts per IP per minute; <= 0 disables
}

// Routes builds the chi router with every route and middleware wired.
//
// Middleware runs in order: RequestID, RealIP, request logger, Recoverer,
// CORS, body limit, then session resolution. Routes that act on behalf of a
// user additionally require an authenticated identity.
func (s *Server) Routes(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(s.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(opts.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(opts.MaxBodyBytes))

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/files/{key}", s.GetFile)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionResolver(s.sessions, s.log))

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if opts.AuthRateLimit > 0 {
					r.Use(httprate.Limit(opts.AuthRateLimit, time.Minute,
						httprate.WithKeyFuncs(httprate.KeyByIP),
						httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
							writeError(w, http.StatusTooManyRequests, "rate_limited", "too many attempts, try again later")
						}),
					))
				}
				r.Post("/register", s.Register)
				r.Post("/login", s.Login)
			})
			r.Post("/logout", s.Logout)
		})
		r.Get("/session", s.GetSession)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireIdentity)

			r.Get("/destinations", s.ListDestinations)
			r.Get("/destinations/nearby", s.NearbyDestinations)
			r.Post("/destinations", s.CreateDestination)
			r.Put("/destinations/{id}", s.UpdateDestination)
			r.Delete("/destinations/{id}", s.DeleteDestination)

			r.Post("/uploads", s.Upload)

			r.Get("/reservations", s.ListReservations)
			r.Post("/reservations", s.CreateReservation)

			r.Get("/overview", s.GetOverview)
		})
	})

	return r
}
