// Package ledgertest provides an in-memory ledger.Repository for tests.
//
// Transactions are serialized: Begin blocks until no other transaction is open,
// and writes land in a private copy of the state that replaces the committed
// state on Commit. Reads outside a transaction see committed state only, so a
// balance read before Begin can be stale by the time the transaction writes,
// which is exactly the window ConditionalUpdateBalance guards.
package ledgertest

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/marketplace/internal/ledger"
)

// Op names a Tx operation for fault injection.
type Op string

const (
	OpConditionalUpdateBalance Op = "ConditionalUpdateBalance"
	OpIncrementBalance         Op = "IncrementBalance"
	OpMarkJobPaid              Op = "MarkJobPaid"
	OpRecordTransfer           Op = "RecordTransfer"
	OpCommit                   Op = "Commit"
)

var (
	errDuplicatePayment = errors.New("duplicate key value violates unique constraint \"uq_transfers_job_id\"")
	errTxDone           = errors.New("transaction has already been committed or rolled back")
)

type state struct {
	profiles  map[int64]ledger.Profile
	contracts map[int64]ledger.Contract
	jobs      map[int64]ledger.Job
	transfers []ledger.Transfer
}

func (st state) clone() state {
	return state{
		profiles:  cloneMap(st.profiles),
		contracts: cloneMap(st.contracts),
		jobs:      cloneMap(st.jobs),
		transfers: slices.Clone(st.transfers),
	}
}

func cloneMap[V any](m map[int64]V) map[int64]V {
	out := make(map[int64]V, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

type Store struct {
	txMu sync.Mutex // held for the lifetime of a transaction

	mu          sync.Mutex
	committed   state
	failures    map[Op]error
	beforeBegin func()
}

var _ ledger.Repository = (*Store)(nil)

func New() *Store {
	return &Store{
		committed: state{
			profiles:  map[int64]ledger.Profile{},
			contracts: map[int64]ledger.Contract{},
			jobs:      map[int64]ledger.Job{},
		},
		failures: map[Op]error{},
	}
}

func (s *Store) AddProfile(p ledger.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.committed.profiles[p.ID] = p
}

func (s *Store) AddContract(c ledger.Contract) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.Client = nil
	c.Jobs = nil
	s.committed.contracts[c.ID] = c
}

func (s *Store) AddJob(j ledger.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j.Contract = nil
	s.committed.jobs[j.ID] = j
}

// Profile returns the committed state of a profile.
func (s *Store) Profile(id int64) (ledger.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.committed.profiles[id]

	return p, ok
}

// Job returns the committed state of a job.
func (s *Store) Job(id int64) (ledger.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.committed.jobs[id]

	return j, ok
}

// Transfers returns the committed journal.
func (s *Store) Transfers() []ledger.Transfer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.committed.transfers)
}

// FailOn makes every later call of op return err. A nil err clears it.
func (s *Store) FailOn(op Op, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		delete(s.failures, op)
		return
	}

	s.failures[op] = err
}

// BeforeBegin registers fn to run at the start of every Begin, before the
// transaction lock is taken. Tests use it to line up concurrent callers.
func (s *Store) BeforeBegin(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.beforeBegin = fn
}

func (s *Store) failure(op Op) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.failures[op]
}

func (s *Store) FindProfile(ctx context.Context, id int64) (*ledger.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.committed.profiles[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}

	return &p, nil
}

func (s *Store) FindUnpaidJobsForClient(ctx context.Context, clientID int64) ([]*ledger.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var jobs []*ledger.Job

	for _, j := range s.committed.jobs {
		c, ok := s.committed.contracts[j.ContractID]
		if !ok || c.ClientID != clientID || c.IsTerminated() || j.Paid {
			continue
		}

		jobs = append(jobs, &j)
	}

	slices.SortFunc(jobs, func(a, b *ledger.Job) int { return cmp.Compare(a.ID, b.ID) })

	return jobs, nil
}

func (s *Store) FindJobForPayment(ctx context.Context, jobID, clientID int64) (*ledger.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.committed.jobs[jobID]
	if !ok {
		return nil, ledger.ErrNotFound
	}

	c, ok := s.committed.contracts[j.ContractID]
	if !ok || c.ClientID != clientID {
		return nil, ledger.ErrNotFound
	}

	client, ok := s.committed.profiles[c.ClientID]
	if !ok {
		return nil, ledger.ErrNotFound
	}

	c.Client = &client
	j.Contract = &c

	return &j, nil
}

func (s *Store) Begin(ctx context.Context) (ledger.Tx, error) {
	s.mu.Lock()
	hook := s.beforeBegin
	s.mu.Unlock()

	if hook != nil {
		hook()
	}

	s.txMu.Lock()

	if err := ctx.Err(); err != nil {
		s.txMu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	work := s.committed.clone()
	s.mu.Unlock()

	return &tx{store: s, ctx: ctx, work: work}, nil
}

type tx struct {
	store *Store
	ctx   context.Context
	work  state
	done  bool
}

func (t *tx) check(op Op) error {
	if t.done {
		return errTxDone
	}

	if err := t.ctx.Err(); err != nil {
		return err
	}

	if err := t.store.failure(op); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (t *tx) ConditionalUpdateBalance(ctx context.Context, profileID, expected, next int64) (int64, error) {
	if err := t.check(OpConditionalUpdateBalance); err != nil {
		return 0, err
	}

	p, ok := t.work.profiles[profileID]
	if !ok || p.Balance != expected {
		return 0, nil
	}

	p.Balance = next
	t.work.profiles[profileID] = p

	return 1, nil
}

func (t *tx) IncrementBalance(ctx context.Context, profileID, delta int64) (int64, error) {
	if err := t.check(OpIncrementBalance); err != nil {
		return 0, err
	}

	p, ok := t.work.profiles[profileID]
	if !ok {
		return 0, ledger.ErrNotFound
	}

	p.Balance += delta
	t.work.profiles[profileID] = p

	return p.Balance, nil
}

func (t *tx) MarkJobPaid(ctx context.Context, jobID int64, paidAt time.Time) error {
	if err := t.check(OpMarkJobPaid); err != nil {
		return err
	}

	j, ok := t.work.jobs[jobID]
	if !ok {
		return ledger.ErrNotFound
	}

	if j.Paid {
		return ledger.ErrConcurrentModification
	}

	j.Paid = true
	j.PaymentDate = new(paidAt)
	t.work.jobs[jobID] = j

	return nil
}

func (t *tx) RecordTransfer(ctx context.Context, tr *ledger.Transfer) error {
	if err := t.check(OpRecordTransfer); err != nil {
		return err
	}

	if tr.JobID != nil {
		for _, existing := range t.work.transfers {
			if existing.JobID != nil && *existing.JobID == *tr.JobID {
				return errDuplicatePayment
			}
		}
	}

	if tr.ID == uuid.Nil {
		tr.ID = uuid.New()
	}

	if tr.CreatedAt.IsZero() {
		tr.CreatedAt = time.Now()
	}

	t.work.transfers = append(t.work.transfers, *tr)

	return nil
}

func (t *tx) Commit() error {
	if t.done {
		return errTxDone
	}
	defer t.release()

	if err := t.check(OpCommit); err != nil {
		return err
	}

	t.store.mu.Lock()
	t.store.committed = t.work
	t.store.mu.Unlock()

	return nil
}

func (t *tx) Rollback() error {
	if t.done {
		return nil
	}

	t.release()

	return nil
}

func (t *tx) release() {
	t.done = true
	t.store.txMu.Unlock()
}
