package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"vizu/internal/http/handlers"
	"vizu/internal/infra"
	"vizu/internal/middleware"
)

// NewRouter assembles the HTTP surface.
func NewRouter(app *handlers.App, cfg *infra.Config) http.Handler {
	r := chi.NewRouter()

	var countryLookup middleware.CountryLookup
	if app.Geo != nil {
		countryLookup = app.Geo.CountryCode
	}

	r.Use(
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.RequestID,
		middleware.Logger(app.Log),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.I18N(cfg.DefaultLocale, countryLookup),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/session", func(r chi.Router) {
		r.Get("/", app.GetSession)
		r.Post("/photo", app.PostPhoto)
		r.Post("/rotate", app.RotatePhoto)
		r.Post("/navigate", app.Navigate)
		r.Post("/reset", app.ResetSession)
	})

	r.Route("/v1/looks", func(r chi.Router) {
		r.Post("/", app.CreateLook)
		r.Post("/current/edit", app.EditLook)
		r.Post("/current/dismiss", app.DismissLook)
	})

	r.Get("/v1/objectives", app.ListObjectives)
	r.Get("/v1/palette", app.GetPalette)
	r.Get("/v1/plans", app.ListPlans)
	r.Post("/v1/plans/select", app.SelectPlan)
	r.Post("/v1/advice", app.PostAdvice)

	return r
}
