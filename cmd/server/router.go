package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/trililingo/trililingo-api/internal/api"
	apiMiddleware "github.com/trililingo/trililingo-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	catalogHandler := api.NewCatalogHandler(app.itemStore, app.logger)
	studyHandler := api.NewStudyHandler(app.studyService, app.logger)
	profileHandler := api.NewProfileHandler(app.prefsService, app.logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog/{language}/{skill}", catalogHandler.GetBySkill)

		r.Get("/challenges", studyHandler.GetChallenges)

		r.Post("/sessions", studyHandler.StartSession)
		r.Get("/sessions", studyHandler.ListSessions)
		r.Get("/sessions/{id}/attempts", studyHandler.GetSessionAttempts)
		r.Post("/sessions/{id}/attempts", studyHandler.SubmitAttempt)
		r.Post("/sessions/{id}/finish", studyHandler.FinishSession)
		r.Post("/sessions/{id}/abort", studyHandler.AbortSession)

		r.Get("/profile", profileHandler.GetProfile)
		r.Put("/profile/language", profileHandler.SetLanguage)
		r.Get("/daily-selection/{language}/{skill}", profileHandler.GetDailySelection)
		r.Put("/daily-selection/{language}/{skill}", profileHandler.PutDailySelection)
		r.Delete("/daily-selection/{language}/{skill}", profileHandler.DeleteDailySelection)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
