package http

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"prepmate/internal/auth"
	"prepmate/internal/config"
	"prepmate/internal/feedback"
	"prepmate/internal/interviews"
	"prepmate/internal/platform/metrics"
	"prepmate/internal/users"
)

// Deps bundles the services the router exposes.
type Deps struct {
	Directory  *users.Directory
	Sessions   *auth.Service
	Interviews *interviews.Service
	Feedback   *feedback.Generator
	Metrics    *metrics.Collector
}

// NewRouter wires application routes and middleware using chi.
func NewRouter(cfg config.Config, deps Deps, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(newSecurityHeadersMiddleware(cfg.Environment))
	r.Use(newSlogMiddleware(logger, deps.Metrics))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "ok",
			"environment": cfg.Environment,
		})
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	authHandler := NewAuthHandler(deps.Directory, deps.Sessions, cfg.Environment, logger)
	interviewHandler := NewInterviewHandler(deps.Interviews, deps.Feedback, logger)
	feedbackHandler := NewFeedbackHandler(deps.Feedback, deps.Metrics, logger)

	// Generation calls out to the model host, so each user gets a small budget.
	feedbackLimiter := newUserRateLimiter(rate.Every(10*time.Second), 3)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.SignUp)
			r.Post("/signin", authHandler.SignIn)
			r.Delete("/session", authHandler.SignOut)
			r.Get("/session", authHandler.Status)
		})

		r.Group(func(r chi.Router) {
			r.Use(newAuthMiddleware(deps.Sessions))

			r.Route("/interviews", func(r chi.Router) {
				r.Get("/latest", interviewHandler.Latest)
				r.Get("/mine", interviewHandler.Mine)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", interviewHandler.Get)
					r.Get("/feedback", interviewHandler.Feedback)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(feedbackLimiter.Middleware())
				r.Post("/feedback", feedbackHandler.Create)
			})
		})
	})

	r.NotFound(http.NotFoundHandler().ServeHTTP)

	return r
}
