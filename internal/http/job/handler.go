package job

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/marketplace/internal/contract"
	"github.com/MrJamesThe3rd/marketplace/internal/http/profile"
	"github.com/MrJamesThe3rd/marketplace/internal/http/render"
	"github.com/MrJamesThe3rd/marketplace/internal/ledger"
	"github.com/MrJamesThe3rd/marketplace/internal/metrics"
	"github.com/MrJamesThe3rd/marketplace/internal/payment"
)

type Handler struct {
	contracts *contract.Service
	payments  *payment.Service
	metrics   *metrics.Metrics
}

func NewHandler(contracts *contract.Service, payments *payment.Service, m *metrics.Metrics) *Handler {
	return &Handler{contracts: contracts, payments: payments, metrics: m}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/unpaid", h.unpaid)
	r.Post("/{job_id}/pay", h.pay)
}

func (h *Handler) unpaid(w http.ResponseWriter, r *http.Request) {
	caller, _ := profile.FromContext(r.Context())

	page := 1

	if s := r.URL.Query().Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			render.Error(w, r, contract.ErrInvalidPage)
			return
		}

		page = n
	}

	res, err := h.contracts.ListUnpaid(r.Context(), caller, page)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toUnpaidResponse(res))
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	caller, _ := profile.FromContext(r.Context())

	jobID, err := strconv.ParseInt(chi.URLParam(r, "job_id"), 10, 64)
	if err != nil {
		render.Error(w, r, fmt.Errorf("%w: invalid job id", ledger.ErrInvalidArgument))
		return
	}

	res, err := h.payments.Pay(r.Context(), jobID, caller.ID)
	h.metrics.RecordTransfer(ledger.TransferKindPayment, err)

	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toPayResponse(res))
}
