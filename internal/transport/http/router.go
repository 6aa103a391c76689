package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"classtrack/internal/class"
	"classtrack/internal/enrollment"
	"classtrack/internal/parent"
	"classtrack/internal/platform/middleware"
	"classtrack/internal/student"
	"classtrack/internal/subscription"
	"classtrack/pkg/platform/httputil"
)

// Handler is the thin HTTP layer. It delegates to domain services without
// embedding business logic so transport concerns remain isolated.
type Handler struct {
	parents       *parent.Service
	students      *student.Service
	classes       *class.Service
	enrollment    *enrollment.Service
	subscriptions *subscription.Service
	logger        *slog.Logger
	validate      *validator.Validate
}

func NewHandler(
	parents *parent.Service,
	students *student.Service,
	classes *class.Service,
	enrollmentSvc *enrollment.Service,
	subscriptions *subscription.Service,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		parents:       parents,
		students:      students,
		classes:       classes,
		enrollment:    enrollmentSvc,
		subscriptions: subscriptions,
		logger:        logger,
		validate:      validator.New(),
	}
}

// NewRouter wires all public endpoints under /api plus the operational
// endpoints. healthPing is the store liveness probe; nil disables the check.
func NewRouter(h *Handler, logger *slog.Logger, healthPing func(ctx context.Context) error) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api", func(api chi.Router) {
		api.Route("/parents", func(pr chi.Router) {
			pr.Post("/", h.handleCreateParent)
			pr.Get("/", h.handleListParents)
			pr.Get("/{id}", h.handleGetParent)
			pr.Delete("/{id}", h.handleDeleteParent)
		})
		api.Route("/students", func(sr chi.Router) {
			sr.Post("/", h.handleCreateStudent)
			sr.Get("/", h.handleListStudents)
			sr.Get("/{id}", h.handleGetStudent)
		})
		api.Route("/classes", func(cr chi.Router) {
			cr.Post("/", h.handleCreateClass)
			cr.Get("/", h.handleListClassesByDay)
			cr.Get("/all", h.handleListClassesWithCounts)
			cr.Post("/{classId}/register", h.handleRegisterStudent)
		})
		api.Route("/subscriptions", func(sr chi.Router) {
			sr.Post("/", h.handleCreateSubscription)
			sr.Get("/", h.handleListSubscriptions)
			sr.Get("/{id}", h.handleGetSubscription)
			sr.Patch("/{id}/use", h.handleUseSession)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if healthPing != nil {
			if err := healthPing(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
