package httptransport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"classtrack/internal/subscription"
	"classtrack/pkg/domain"
	dErrors "classtrack/pkg/domain-errors"
	"classtrack/pkg/platform/httputil"
)

type createSubscriptionRequest struct {
	StudentID     string `json:"studentId" validate:"required,max=64"`
	PackageName   string `json:"packageName" validate:"required,max=255"`
	StartDate     string `json:"startDate" validate:"required"`
	EndDate       string `json:"endDate" validate:"required"`
	TotalSessions *int   `json:"totalSessions" validate:"required"`
}

func (h *Handler) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req createSubscriptionRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		h.writeError(w, dErrors.New(dErrors.CodeInvalidInput, "startDate must be YYYY-MM-DD"))
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		h.writeError(w, dErrors.New(dErrors.CodeInvalidInput, "endDate must be YYYY-MM-DD"))
		return
	}

	sub, err := h.subscriptions.Create(r.Context(), subscription.CreateParams{
		StudentID:     domain.StudentID(req.StudentID),
		PackageName:   req.PackageName,
		StartDate:     start,
		EndDate:       end,
		TotalSessions: *req.TotalSessions,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, sub)
}

func (h *Handler) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subscriptions.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, subs)
}

func (h *Handler) handleGetSubscription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := domain.ValidateID(id); err != nil {
		h.writeError(w, err)
		return
	}

	sub, err := h.subscriptions.Get(r.Context(), domain.SubscriptionID(id))
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sub)
}

func (h *Handler) handleUseSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := domain.ValidateID(id); err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.subscriptions.ConsumeSession(r.Context(), domain.SubscriptionID(id)); err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Session used"})
}
