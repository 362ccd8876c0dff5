package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marchen/vocabforge/internal/api"
	"github.com/marchen/vocabforge/internal/api/middleware"
)

// newRouter assembles the HTTP routing table.
func (app *application) newRouter() http.Handler {
	studyHandler := api.NewStudyHandler(app.studyService)
	essayHandler := api.NewEssayHandler(app.studyService)
	statsHandler := api.NewStatsHandler(app.studyService)
	ankiHandler := api.NewAnkiHandler(app.exporter)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Trace)
	r.Use(chimiddleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", studyHandler.Generate)
		r.Get("/tasks/{id}", studyHandler.GetTask)

		r.Get("/essays", essayHandler.List)
		r.Get("/essays/{id}", essayHandler.Get)

		r.Get("/stats", statsHandler.Get)

		r.Get("/anki/export/{kind}", ankiHandler.Export)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(app.metrics, promhttp.HandlerOpts{}))

	return r
}
