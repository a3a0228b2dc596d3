package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Rushibhatt10/HBEstate/internal/adapter/http/handler"
	"github.com/Rushibhatt10/HBEstate/internal/adapter/http/middleware"
	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
	"github.com/Rushibhatt10/HBEstate/internal/platform/metrics"
)

// Deps are the handlers and policies the router wires together.
type Deps struct {
	Properties *handler.PropertyHandler
	Queries    *handler.QueryHandler
	Admin      *handler.AdminHandler
	Health     http.HandlerFunc

	Verifier       middleware.TokenVerifier
	ContactLimiter *middleware.IPRateLimiter
	LoginLimiter   *middleware.IPRateLimiter
	Metrics        *metrics.Manager
	Logger         *logger.Logger
	ServiceName    string
}

// New builds the HTTP handler for the whole API.
func New(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Logger.Named("http")))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(chimw.Timeout(60 * time.Second))

	r.Get("/healthz", d.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/properties", d.Properties.HandleList)
		r.Get("/properties/{id}", d.Properties.HandleGet)

		r.With(d.ContactLimiter.RateLimit()).Post("/queries", d.Queries.HandleSubmit)
		r.With(d.LoginLimiter.RateLimit()).Post("/admin/login", d.Admin.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(d.Verifier, d.Logger))

			r.Route("/admin/properties", func(r chi.Router) {
				r.Get("/", d.Properties.HandleList)
				r.Post("/", d.Properties.HandleCreate)
				r.Get("/{id}", d.Properties.HandleAdminGet)
				r.Put("/{id}", d.Properties.HandleUpdate)
				r.Delete("/{id}", d.Properties.HandleDelete)
				r.Post("/{id}/images", d.Properties.HandleAttachImages)
				r.Delete("/{id}/images/{index}", d.Properties.HandleRemoveImage)
			})
			r.Post("/admin/uploads", d.Properties.HandleUpload)
			r.Get("/admin/queries", d.Queries.HandleList)
			r.Delete("/admin/queries/{id}", d.Queries.HandleDelete)
			r.Get("/admin/activity", d.Admin.HandleActivity)
			r.Get("/admin/stats", d.Admin.HandleStats)
		})
	})

	return otelhttp.NewHandler(r, d.ServiceName,
		otelhttp.WithSpanNameFormatter(func(_ string, req *http.Request) string {
			return req.Method + " " + req.URL.Path
		}),
	)
}
