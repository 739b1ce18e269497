package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/flashcard-synth/internal/api"
	apiMiddleware "github.com/phrazzld/flashcard-synth/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept"},
		ExposedHeaders: []string{"X-Trace-ID"},
		MaxAge:         300,
	}))

	flashcardHandler := api.NewFlashcardHandler(
		app.pipeline,
		app.config.Server.MaxUploadBytes,
		app.logger,
	)

	r.Get("/", flashcardHandler.Landing)
	r.Get("/health", flashcardHandler.Health)
	r.Post("/generate-flashcards", flashcardHandler.GenerateFlashcards)
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	return r
}
