package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	auth "github.com/pyq-bank/qbank/internal/auth/middleware"
	"github.com/pyq-bank/qbank/internal/question"
)

// Deps carries everything the router mounts.
type Deps struct {
	Store   question.Store
	Ingest  *question.Service
	Auth    *auth.AuthService
	Origins []string

	// DisableAuth leaves the write endpoints open (dev/offline mode
	// without a configured editor account).
	DisableAuth bool
}

// New assembles the full HTTP surface.
func New(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	if len(d.Origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.Origins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	if d.Auth != nil {
		r.Post("/auth/login", auth.LoginHandler(d.Auth))
	}

	// Read surface
	r.Get("/questions", ListQuestionsHandler(d.Store))
	r.Get("/questions/{questionID}", GetQuestionHandler(d.Store))
	r.Post("/questions/{questionID}/answer", AnswerQuestionHandler(d.Store))
	r.Get("/analytics", AnalyticsHandler(d.Store))
	r.Post("/tools/array-length", ArrayLengthHandler())

	// Write surface
	r.Group(func(pr chi.Router) {
		if !d.DisableAuth && d.Auth != nil {
			pr.Use(auth.JWTMiddleware(d.Auth))
		}
		pr.Post("/questions", AddQuestionHandler(d.Ingest))
		pr.Post("/questions/batch", BatchAddHandler(d.Ingest))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	return r
}
