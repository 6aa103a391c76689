package httptransport

import (
	"net/http"
	"strconv"

	"classtrack/internal/class"
	"classtrack/pkg/domain"
	dErrors "classtrack/pkg/domain-errors"
	"classtrack/pkg/platform/httputil"
)

type createClassRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Subject     string `json:"subject" validate:"required,max=255"`
	DayOfWeek   *int   `json:"dayOfWeek" validate:"required"`
	TimeSlot    string `json:"timeSlot" validate:"required"`
	TeacherName string `json:"teacherName" validate:"required,max=255"`
	MaxStudents *int   `json:"maxStudents" validate:"required"`
}

func (h *Handler) handleCreateClass(w http.ResponseWriter, r *http.Request) {
	var req createClassRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	c, err := h.classes.Create(r.Context(), class.CreateParams{
		Name:        req.Name,
		Subject:     req.Subject,
		DayOfWeek:   *req.DayOfWeek,
		TimeSlot:    req.TimeSlot,
		TeacherName: req.TeacherName,
		MaxStudents: *req.MaxStudents,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, c)
}

// handleListClassesByDay serves GET /api/classes?day=N. Without the day
// parameter every class is returned.
func (h *Handler) handleListClassesByDay(w http.ResponseWriter, r *http.Request) {
	var day *domain.DayOfWeek
	if raw := r.URL.Query().Get("day"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, dErrors.New(dErrors.CodeInvalidInput, "day must be an integer"))
			return
		}
		parsed, err := domain.ParseDayOfWeek(n)
		if err != nil {
			h.writeError(w, err)
			return
		}
		day = &parsed
	}

	classes, err := h.classes.FindByDay(r.Context(), day)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, classes)
}

func (h *Handler) handleListClassesWithCounts(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classes.ListWithCounts(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, classes)
}
