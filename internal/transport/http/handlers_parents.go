package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"classtrack/pkg/domain"
	"classtrack/pkg/platform/httputil"
)

type createParentRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Phone string `json:"phone" validate:"required,max=32"`
	Email string `json:"email" validate:"required,email,max=255"`
}

func (h *Handler) handleCreateParent(w http.ResponseWriter, r *http.Request) {
	var req createParentRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	p, err := h.parents.Create(r.Context(), req.Name, req.Phone, req.Email)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) handleListParents(w http.ResponseWriter, r *http.Request) {
	parents, err := h.parents.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, parents)
}

func (h *Handler) handleGetParent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := domain.ValidateID(id); err != nil {
		h.writeError(w, err)
		return
	}

	p, err := h.parents.Get(r.Context(), domain.ParentID(id))
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) handleDeleteParent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := domain.ValidateID(id); err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.parents.Delete(r.Context(), domain.ParentID(id)); err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Parent deleted"})
}
