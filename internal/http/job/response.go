package job

import (
	"time"

	"github.com/MrJamesThe3rd/marketplace/internal/contract"
	"github.com/MrJamesThe3rd/marketplace/internal/ledger"
	"github.com/MrJamesThe3rd/marketplace/internal/payment"
)

type jobResponse struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Price       int64      `json:"price"`
	Paid        bool       `json:"paid"`
	PaymentDate *time.Time `json:"payment_date"`
	ContractID  int64      `json:"contract_id"`
}

type unpaidContractResponse struct {
	ID           int64                 `json:"id"`
	Terms        string                `json:"terms"`
	Status       ledger.ContractStatus `json:"status"`
	ClientID     int64                 `json:"client_id"`
	ContractorID int64                 `json:"contractor_id"`
	Jobs         []jobResponse         `json:"jobs"`
}

type paginationResponse struct {
	Page           int `json:"page"`
	PageSize       int `json:"page_size"`
	TotalContracts int `json:"total_contracts"`
	TotalPages     int `json:"total_pages"`
}

type unpaidResponse struct {
	Contracts  []unpaidContractResponse `json:"contracts"`
	Pagination paginationResponse       `json:"pagination"`
}

type payResponse struct {
	Message       string    `json:"message"`
	JobID         int64     `json:"job_id"`
	Amount        int64     `json:"amount"`
	PaidAt        time.Time `json:"paid_at"`
	ClientBalance int64     `json:"client_balance"`
}

func toUnpaidResponse(page *contract.UnpaidPage) unpaidResponse {
	resp := unpaidResponse{
		Contracts: make([]unpaidContractResponse, len(page.Contracts)),
		Pagination: paginationResponse{
			Page:           page.Page,
			PageSize:       page.PageSize,
			TotalContracts: page.TotalContracts,
			TotalPages:     page.TotalPages,
		},
	}

	for i, c := range page.Contracts {
		jobs := make([]jobResponse, len(c.Jobs))
		for k, j := range c.Jobs {
			jobs[k] = jobResponse{
				ID:          j.ID,
				Description: j.Description,
				Price:       j.Price,
				Paid:        j.Paid,
				PaymentDate: j.PaymentDate,
				ContractID:  j.ContractID,
			}
		}

		resp.Contracts[i] = unpaidContractResponse{
			ID:           c.ID,
			Terms:        c.Terms,
			Status:       c.Status,
			ClientID:     c.ClientID,
			ContractorID: c.ContractorID,
			Jobs:         jobs,
		}
	}

	return resp
}

func toPayResponse(res *payment.Result) payResponse {
	msg := "Job marked paid!"
	if res.AlreadyPaid {
		msg = "Job is already marked paid"
	}

	return payResponse{
		Message:       msg,
		JobID:         res.JobID,
		Amount:        res.Amount,
		PaidAt:        res.PaidAt,
		ClientBalance: res.ClientBalance,
	}
}
