package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"classtrack/pkg/domain"
	"classtrack/pkg/platform/httputil"
)

type registerStudentRequest struct {
	StudentID string `json:"studentId" validate:"required,max=64"`
}

func (h *Handler) handleRegisterStudent(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classId")
	if err := domain.ValidateID(classID); err != nil {
		h.writeError(w, err)
		return
	}

	var req registerStudentRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	err := h.enrollment.Register(r.Context(), domain.ClassID(classID), domain.StudentID(req.StudentID))
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"message": "Registration successful"})
}
