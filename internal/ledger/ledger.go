package ledger

import (
	"time"

	"github.com/google/uuid"
)

// ProfileType distinguishes the paying side of a contract from the working side.
type ProfileType string

const (
	ProfileTypeClient     ProfileType = "client"
	ProfileTypeContractor ProfileType = "contractor"
)

// ContractStatus represents the lifecycle state of a contract.
type ContractStatus string

const (
	ContractStatusNew        ContractStatus = "new"
	ContractStatusInProgress ContractStatus = "in_progress"
	ContractStatusTerminated ContractStatus = "terminated"
)

// TransferKind labels a journal entry.
type TransferKind string

const (
	TransferKindDeposit TransferKind = "deposit"
	TransferKindPayment TransferKind = "payment"
)

// Profile is a client or contractor account.
type Profile struct {
	ID         int64
	FirstName  string
	LastName   string
	Profession string
	Balance    int64 // Amount in minor units
	Type       ProfileType
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p *Profile) IsClient() bool     { return p.Type == ProfileTypeClient }
func (p *Profile) IsContractor() bool { return p.Type == ProfileTypeContractor }

func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Contract binds one client and one contractor.
type Contract struct {
	ID           int64
	Terms        string
	Status       ContractStatus
	ClientID     int64
	ContractorID int64
	Client       *Profile // Loaded via JOIN
	Jobs         []*Job   // Loaded for unpaid listings
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (c *Contract) IsTerminated() bool { return c.Status == ContractStatusTerminated }

// Job is a billable unit of work under a contract.
type Job struct {
	ID          int64
	Description string
	Price       int64 // Amount in minor units
	Paid        bool
	PaymentDate *time.Time
	ContractID  int64
	Contract    *Contract // Loaded via JOIN
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Transfer is a journal entry written alongside every balance movement.
// FromProfileID is nil for deposits.
type Transfer struct {
	ID            uuid.UUID
	Kind          TransferKind
	JobID         *int64
	FromProfileID *int64
	ToProfileID   int64
	Amount        int64
	CreatedAt     time.Time
}
