package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/quizwallet/internal/domain/errors"
	"github.com/polkiloo/quizwallet/internal/domain/model"
	"github.com/polkiloo/quizwallet/internal/domain/repository"
)

// MemoryStore is an in-memory repository.Factory. Every operation runs under
// one mutex, which gives tests the same atomicity the SQL layer provides.
type MemoryStore struct {
	mu sync.Mutex

	users        map[int64]*model.User
	withdrawals  map[int64]*model.Withdrawal
	transactions map[string]*model.Transaction
	entries      []model.LedgerEntry

	nextUser       int64
	nextWithdrawal int64
	nextTx         int64
	nextEntry      int64

	// Err, when set, is returned by every operation.
	Err error
	// Now overrides the clock used for timestamps.
	Now func() time.Time
}

var _ repository.Factory = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[int64]*model.User),
		withdrawals:  make(map[int64]*model.Withdrawal),
		transactions: make(map[string]*model.Transaction),
	}
}

func (s *MemoryStore) Users() repository.UserRepository               { return memoryUsers{s} }
func (s *MemoryStore) Wallets() repository.WalletRepository           { return memoryWallets{s} }
func (s *MemoryStore) Withdrawals() repository.WithdrawalRepository   { return memoryWithdrawals{s} }
func (s *MemoryStore) Transactions() repository.TransactionRepository { return memoryTransactions{s} }

// AddUser seeds a user with the given login and balance and returns its id.
func (s *MemoryStore) AddUser(login string, role model.Role, wallet int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUser++
	s.users[s.nextUser] = &model.User{ID: s.nextUser, Login: login, Role: role, Wallet: wallet, CreatedAt: s.now()}
	return s.nextUser
}

// SetBalance overwrites a user's balance without recording a ledger entry.
func (s *MemoryStore) SetBalance(userID, wallet int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		u.Wallet = wallet
	}
}

// BalanceOf reads a balance directly, returning -1 for unknown users.
func (s *MemoryStore) BalanceOf(userID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		return u.Wallet
	}
	return -1
}

// Entries returns a copy of the ledger in insertion order.
func (s *MemoryStore) Entries() []model.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.LedgerEntry(nil), s.entries...)
}

func (s *MemoryStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *MemoryStore) applyLocked(m model.Movement, delta int64) (int64, error) {
	if m.Amount <= 0 {
		return 0, domainErrors.ErrInvalidAmount
	}
	u, ok := s.users[m.UserID]
	if !ok {
		return 0, domainErrors.ErrNotFound
	}
	if u.Wallet+delta < 0 {
		return 0, domainErrors.ErrInsufficientFunds
	}
	u.Wallet += delta
	s.nextEntry++
	s.entries = append(s.entries, model.LedgerEntry{
		ID:           s.nextEntry,
		UserID:       m.UserID,
		Delta:        delta,
		BalanceAfter: u.Wallet,
		Reason:       m.Reason,
		Reference:    m.Reference,
		CreatedAt:    s.now(),
	})
	return u.Wallet, nil
}

type memoryUsers struct{ s *MemoryStore }

func (r memoryUsers) Create(ctx context.Context, nu repository.NewUser) (*model.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Login == nu.Login {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	if nu.ReferredBy != nil {
		if _, ok := s.users[*nu.ReferredBy]; !ok {
			return nil, domainErrors.ErrInvalidReferral
		}
	}
	role := nu.Role
	if role == "" {
		role = model.RoleUser
	}
	s.nextUser++
	u := &model.User{
		ID:           s.nextUser,
		Login:        nu.Login,
		PasswordHash: nu.PasswordHash,
		Role:         role,
		ReferredBy:   nu.ReferredBy,
		CreatedAt:    s.now(),
	}
	s.users[u.ID] = u
	out := *u
	return &out, nil
}

func (r memoryUsers) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Login == login {
			out := *u
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r memoryUsers) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r memoryUsers) GetByIDs(ctx context.Context, ids []int64) ([]model.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

type memoryWallets struct{ s *MemoryStore }

func (r memoryWallets) Balance(ctx context.Context, userID int64) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	u, ok := s.users[userID]
	if !ok {
		return 0, domainErrors.ErrNotFound
	}
	return u.Wallet, nil
}

func (r memoryWallets) Credit(ctx context.Context, m model.Movement) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return s.applyLocked(m, m.Amount)
}

func (r memoryWallets) Debit(ctx context.Context, m model.Movement) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return s.applyLocked(m, -m.Amount)
}

func (r memoryWallets) History(ctx context.Context, userID int64) ([]model.LedgerEntry, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.LedgerEntry
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].UserID == userID {
			out = append(out, s.entries[i])
		}
	}
	return out, nil
}

type memoryWithdrawals struct{ s *MemoryStore }

func (r memoryWithdrawals) Create(ctx context.Context, userID, amount int64, destination string) (*model.Withdrawal, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.users[userID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	s.nextWithdrawal++
	w := &model.Withdrawal{
		ID:          s.nextWithdrawal,
		UserID:      userID,
		Amount:      amount,
		Destination: destination,
		Status:      model.WithdrawalStatusPending,
		CreatedAt:   s.now(),
	}
	s.withdrawals[w.ID] = w
	out := *w
	return &out, nil
}

func (r memoryWithdrawals) GetByID(ctx context.Context, id int64) (*model.Withdrawal, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	w, ok := s.withdrawals[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *w
	return &out, nil
}

func (r memoryWithdrawals) ListByUser(ctx context.Context, userID int64) ([]model.Withdrawal, error) {
	return r.list(func(w *model.Withdrawal) bool { return w.UserID == userID })
}

func (r memoryWithdrawals) ListAll(ctx context.Context) ([]model.Withdrawal, error) {
	return r.list(func(*model.Withdrawal) bool { return true })
}

func (r memoryWithdrawals) list(keep func(*model.Withdrawal) bool) ([]model.Withdrawal, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Withdrawal
	for _, w := range s.withdrawals {
		if keep(w) {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r memoryWithdrawals) Accept(ctx context.Context, id int64) (*model.Withdrawal, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	w, err := r.pendingLocked(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.applyLocked(model.Movement{
		UserID:    w.UserID,
		Amount:    w.Amount,
		Reason:    model.EntryReasonWithdrawal,
		Reference: w.LedgerReference(),
	}, -w.Amount); err != nil {
		return nil, err
	}
	return r.closeLocked(w, model.WithdrawalStatusAccepted), nil
}

func (r memoryWithdrawals) Reject(ctx context.Context, id int64) (*model.Withdrawal, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	w, err := r.pendingLocked(id)
	if err != nil {
		return nil, err
	}
	return r.closeLocked(w, model.WithdrawalStatusRejected), nil
}

func (r memoryWithdrawals) pendingLocked(id int64) (*model.Withdrawal, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	w, ok := r.s.withdrawals[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if !w.IsPending() {
		return nil, domainErrors.ErrAlreadyProcessed
	}
	return w, nil
}

func (r memoryWithdrawals) closeLocked(w *model.Withdrawal, status model.WithdrawalStatus) *model.Withdrawal {
	now := r.s.now()
	w.Status = status
	w.ProcessedAt = &now
	out := *w
	return &out
}

type memoryTransactions struct{ s *MemoryStore }

func (r memoryTransactions) Create(ctx context.Context, userID *int64, externalID string, amount int64) (*model.Transaction, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.transactions[externalID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	s.nextTx++
	now := s.now()
	tx := &model.Transaction{
		ID:         s.nextTx,
		UserID:     userID,
		ExternalID: externalID,
		Amount:     amount,
		Status:     model.PaymentStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.transactions[externalID] = tx
	out := *tx
	return &out, nil
}

func (r memoryTransactions) GetByExternalID(ctx context.Context, externalID string) (*model.Transaction, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	tx, ok := s.transactions[externalID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *tx
	return &out, nil
}

func (r memoryTransactions) ListAll(ctx context.Context) ([]model.Transaction, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		out = append(out, *tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memoryTransactions) Resolve(ctx context.Context, externalID string, status model.PaymentStatus) (*model.Transaction, bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, false, s.Err
	}
	if !status.IsTerminal() {
		return nil, false, domainErrors.ErrInvalidStatus
	}
	tx, ok := s.transactions[externalID]
	if !ok {
		return nil, false, domainErrors.ErrNotFound
	}
	if tx.Status != model.PaymentStatusPending {
		out := *tx
		return &out, false, nil
	}
	if status == model.PaymentStatusSuccess && tx.UserID != nil {
		if _, err := s.applyLocked(model.Movement{
			UserID:    *tx.UserID,
			Amount:    tx.Amount,
			Reason:    model.EntryReasonPayment,
			Reference: tx.ExternalID,
		}, tx.Amount); err != nil {
			return nil, false, err
		}
	}
	tx.Status = status
	tx.UpdatedAt = s.now()
	out := *tx
	return &out, true, nil
}

func (r memoryTransactions) SelectPendingForReconciliation(ctx context.Context, limit int) ([]model.Transaction, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Transaction
	for _, tx := range s.transactions {
		if tx.Status == model.PaymentStatusPending {
			out = append(out, *tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	now := s.now()
	for _, tx := range out {
		s.transactions[tx.ExternalID].UpdatedAt = now
	}
	return out, nil
}
