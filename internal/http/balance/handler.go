package balance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/marketplace/internal/deposit"
	"github.com/MrJamesThe3rd/marketplace/internal/http/profile"
	"github.com/MrJamesThe3rd/marketplace/internal/http/render"
	"github.com/MrJamesThe3rd/marketplace/internal/ledger"
	"github.com/MrJamesThe3rd/marketplace/internal/metrics"
)

var (
	errInvalidUser   = fmt.Errorf("%w: invalid user id", ledger.ErrInvalidArgument)
	errNotCaller     = fmt.Errorf("%w: deposits can only be made into your own balance", ledger.ErrForbidden)
	errInvalidAmount = fmt.Errorf("%w: amount must be an integer", ledger.ErrInvalidArgument)
)

type Handler struct {
	svc     *deposit.Service
	metrics *metrics.Metrics
}

func NewHandler(svc *deposit.Service, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, metrics: m}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/deposit/{userId}", h.deposit)
}

type depositRequest struct {
	Amount json.RawMessage `json:"amount"`
}

type depositResponse struct {
	Message   string `json:"message"`
	ProfileID int64  `json:"profile_id"`
	Amount    int64  `json:"amount"`
	Balance   int64  `json:"balance"`
}

// parseAmount accepts only a bare JSON integer.
func parseAmount(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 {
		return 0, errInvalidAmount
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, errInvalidAmount
	}

	n, ok := v.(json.Number)
	if !ok {
		return 0, errInvalidAmount
	}

	amount, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0, errInvalidAmount
	}

	return amount, nil
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	caller, _ := profile.FromContext(r.Context())

	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		render.Error(w, r, errInvalidUser)
		return
	}

	if userID != caller.ID {
		render.Error(w, r, errNotCaller)
		return
	}

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, r, fmt.Errorf("%w: malformed request body", ledger.ErrInvalidArgument))
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	res, err := h.svc.Deposit(r.Context(), userID, amount)
	h.metrics.RecordTransfer(ledger.TransferKindDeposit, err)

	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, depositResponse{
		Message:   "Deposit successful",
		ProfileID: res.ProfileID,
		Amount:    res.Amount,
		Balance:   res.Balance,
	})
}
