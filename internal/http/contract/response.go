package contract

import (
	"time"

	"github.com/MrJamesThe3rd/marketplace/internal/ledger"
)

type contractResponse struct {
	ID           int64                 `json:"id"`
	Terms        string                `json:"terms"`
	Status       ledger.ContractStatus `json:"status"`
	ClientID     int64                 `json:"client_id"`
	ContractorID int64                 `json:"contractor_id"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

func toResponse(c *ledger.Contract) contractResponse {
	return contractResponse{
		ID:           c.ID,
		Terms:        c.Terms,
		Status:       c.Status,
		ClientID:     c.ClientID,
		ContractorID: c.ContractorID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toResponseList(cs []*ledger.Contract) []contractResponse {
	resp := make([]contractResponse, len(cs))
	for i, c := range cs {
		resp[i] = toResponse(c)
	}

	return resp
}
