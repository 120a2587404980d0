package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"clinic-management-api/internal/middleware"
	"clinic-management-api/internal/session"
	"clinic-management-api/internal/store"
)

type Handler struct {
	store    *store.Store
	sessions *session.Manager
	secret   string
	log      *zap.Logger
	validate *validator.Validate
}

func New(st *store.Store, sm *session.Manager, secret string, log *zap.Logger) *Handler {
	return &Handler{
		store:    st,
		sessions: sm,
		secret:   secret,
		log:      log,
		validate: validator.New(),
	}
}

// Routes assembles the full router: open auth endpoints behind the per-IP
// limiter, everything else behind bearer auth.
func (h *Handler) Routes(authLimiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	r.Use(httprate.LimitByIP(120, time.Minute))

	r.Route("/auth", func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)
		r.Post("/logout", h.Logout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(h.secret))

		r.Route("/professionals", func(r chi.Router) {
			r.Get("/", h.ListProfessionals)
			r.Post("/", h.CreateProfessional)
			r.Get("/{id}", h.GetProfessional)
			r.Put("/{id}", h.UpdateProfessional)
			r.Delete("/{id}", h.DeleteProfessional)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/appointments/today", h.TodayAppointments)
			r.Get("/stats", h.DashboardStats)
			r.Post("/refresh", h.RefreshDashboard)
		})

		r.Get("/notifications", h.Notifications)
	})

	return r
}

func (h *Handler) session(r *http.Request) *session.Session {
	return h.sessions.Get(middleware.UserID(r.Context()))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// decode unmarshals the body into v and runs struct validation.
func (h *Handler) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return h.validate.Struct(v)
}
