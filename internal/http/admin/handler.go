package admin

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/marketplace/internal/http/render"
	"github.com/MrJamesThe3rd/marketplace/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/best-profession", h.bestProfession)
	r.Get("/best-clients", h.bestClients)
}

type professionResponse struct {
	Profession    string `json:"profession"`
	TotalEarnings int64  `json:"total_earnings"`
}

type clientResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Paid     int64  `json:"paid"`
}

func parseRange(r *http.Request) (report.Range, error) {
	q := r.URL.Query()
	return report.ParseRange(q.Get("start"), q.Get("end"), q.Get("timezone"))
}

func (h *Handler) bestProfession(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	best, err := h.svc.BestProfession(r.Context(), rng)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, professionResponse{Profession: best.Profession, TotalEarnings: best.Total})
}

func (h *Handler) bestClients(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var limit int

	if s := r.URL.Query().Get("limit"); s != "" {
		limit, err = strconv.Atoi(s)
		if err != nil || limit <= 0 {
			render.Error(w, r, report.ErrInvalidLimit)
			return
		}
	}

	clients, err := h.svc.BestClients(r.Context(), rng, limit)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]clientResponse, len(clients))
	for i, c := range clients {
		resp[i] = clientResponse{ID: c.ID, FullName: c.FullName, Paid: c.Paid}
	}

	render.JSON(w, http.StatusOK, resp)
}
