package contract

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/marketplace/internal/contract"
	"github.com/MrJamesThe3rd/marketplace/internal/http/profile"
	"github.com/MrJamesThe3rd/marketplace/internal/http/render"
	"github.com/MrJamesThe3rd/marketplace/internal/ledger"
)

type Handler struct {
	svc *contract.Service
}

func NewHandler(svc *contract.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	caller, _ := profile.FromContext(r.Context())

	contracts, err := h.svc.List(r.Context(), caller)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(contracts))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	caller, _ := profile.FromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		render.Error(w, r, fmt.Errorf("%w: invalid contract id", ledger.ErrInvalidArgument))
		return
	}

	c, err := h.svc.Get(r.Context(), caller, id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(c))
}
