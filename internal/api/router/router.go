package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/medvoice/medvoice-ai-platform/internal/doctors"
	"github.com/medvoice/medvoice-ai-platform/internal/extract"
	httpmiddleware "github.com/medvoice/medvoice-ai-platform/internal/http/middleware"
	"github.com/medvoice/medvoice-ai-platform/internal/report"
	"github.com/medvoice/medvoice-ai-platform/internal/session"
	"github.com/medvoice/medvoice-ai-platform/internal/users"
	"github.com/medvoice/medvoice-ai-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	ReportHandler  *report.Handler
	SessionHandler *session.Handler
	UsersHandler   *users.Handler
	DoctorsHandler *doctors.Handler
	ExtractHandler *extract.Handler
	MetricsHandler http.Handler

	AuthJWTSecret      string
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Authenticated API
	r.Route("/api", func(api chi.Router) {
		api.Use(httpmiddleware.UserJWT(cfg.AuthJWTSecret))
		// After auth so the limiter can key buckets by user rather than IP.
		if cfg.RateLimitRPS > 0 {
			api.Use(httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		}

		if cfg.UsersHandler != nil {
			api.Post("/users", cfg.UsersHandler.EnsureUser)
		}
		if cfg.DoctorsHandler != nil {
			api.Get("/doctors", cfg.DoctorsHandler.ListDoctors)
			api.Post("/doctors/suggest", cfg.DoctorsHandler.SuggestDoctors)
		}
		if cfg.SessionHandler != nil {
			api.Post("/sessions", cfg.SessionHandler.CreateSession)
			api.Get("/sessions", cfg.SessionHandler.GetSessions)
			api.Get("/sessions/{sessionID}/report.pdf", cfg.SessionHandler.DownloadReportPDF)
		}
		if cfg.ReportHandler != nil {
			api.Post("/reports/synthesize", cfg.ReportHandler.Synthesize)
			api.Post("/reports/compare", cfg.ReportHandler.Compare)
		}
		if cfg.ExtractHandler != nil {
			api.Post("/extract", cfg.ExtractHandler.ExtractText)
		}
	})

	return r
}
