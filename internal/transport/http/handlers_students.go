package httptransport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"classtrack/internal/student"
	"classtrack/pkg/domain"
	dErrors "classtrack/pkg/domain-errors"
	"classtrack/pkg/platform/httputil"
)

type createStudentRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	DOB          string  `json:"dob" validate:"required"`
	Gender       string  `json:"gender" validate:"required"`
	CurrentGrade *int    `json:"currentGrade" validate:"omitempty,min=1,max=12"`
	ParentID     *string `json:"parentId" validate:"omitempty,max=64"`
}

func (h *Handler) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var req createStudentRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		h.writeError(w, dErrors.New(dErrors.CodeInvalidInput, "dob must be YYYY-MM-DD"))
		return
	}
	gender, err := domain.ParseGender(req.Gender)
	if err != nil {
		h.writeError(w, err)
		return
	}

	params := student.CreateParams{
		Name:         req.Name,
		DOB:          dob,
		Gender:       gender,
		CurrentGrade: req.CurrentGrade,
	}
	if req.ParentID != nil && *req.ParentID != "" {
		pid := domain.ParentID(*req.ParentID)
		params.ParentID = &pid
	}

	st, err := h.students.Create(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, st)
}

func (h *Handler) handleListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.students.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, students)
}

func (h *Handler) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := domain.ValidateID(id); err != nil {
		h.writeError(w, err)
		return
	}

	st, err := h.students.Get(r.Context(), domain.StudentID(id))
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, st)
}
