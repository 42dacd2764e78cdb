// Package ledger implements the in-memory account ledger. A single mutex
// serializes every operation, so the debit/credit pair of a transfer and
// the balance/log update of any mutation are atomic: all checks run before
// any state changes, and a failed check changes nothing.
package ledger

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amitrawal/railbank/pkg/domain"
	"github.com/amitrawal/railbank/pkg/domain/account"
	"github.com/amitrawal/railbank/pkg/money"
)

// Ledger holds accounts and their append-only transaction logs.
type Ledger struct {
	mu       sync.Mutex
	accounts map[string]*account.Account
	history  map[string][]*account.Transaction
	now      func() time.Time
	logger   *slog.Logger
}

// New builds an empty Ledger on the system clock.
func New(logger *slog.Logger) *Ledger {
	return NewWithClock(logger, time.Now)
}

// NewWithClock injects the clock used to timestamp transactions.
func NewWithClock(logger *slog.Logger, now func() time.Time) *Ledger {
	return &Ledger{
		accounts: make(map[string]*account.Account),
		history:  make(map[string][]*account.Transaction),
		now:      now,
		logger:   logger,
	}
}

// Open creates an account with an opening balance.
func (l *Ledger) Open(id, pin string, balance money.Amount) (*account.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.accounts[id]; ok {
		return nil, fmt.Errorf("account %q: %w", id, domain.ErrAlreadyExists)
	}
	a, err := account.New(id, pin, balance, l.now())
	if err != nil {
		return nil, err
	}
	l.accounts[id] = a
	if balance > 0 {
		l.append(a, account.KindDeposit, balance, "")
	}
	l.logger.Info("account opened", "account", id, "balance", money.Format(balance))
	cp := *a
	return &cp, nil
}

// Get returns a copy of the account, keeping internal state unreachable
// from callers.
func (l *Ledger) Get(id string) (*account.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %q: %w", id, account.ErrAccountNotFound)
	}
	cp := *a
	return &cp, nil
}

// VerifyPIN checks the account PIN.
func (l *Ledger) VerifyPIN(id, pin string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.accounts[id]
	if !ok {
		return fmt.Errorf("account %q: %w", id, account.ErrAccountNotFound)
	}
	if a.PIN != pin {
		return account.ErrInvalidPIN
	}
	return nil
}

// Withdraw debits the account. The balance never goes negative: an amount
// above the balance fails with ErrInsufficientFunds and changes nothing.
func (l *Ledger) Withdraw(id string, amount money.Amount) (money.Amount, error) {
	if amount <= 0 {
		return 0, account.ErrAmountMustBePositive
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.accounts[id]
	if !ok {
		return 0, fmt.Errorf("account %q: %w", id, account.ErrAccountNotFound)
	}
	if amount > a.Balance {
		return 0, account.ErrInsufficientFunds
	}
	a.Balance -= amount
	l.append(a, account.KindWithdraw, amount, "")
	return a.Balance, nil
}

// Deposit credits the account. There is no upper bound.
func (l *Ledger) Deposit(id string, amount money.Amount) (money.Amount, error) {
	if amount <= 0 {
		return 0, account.ErrAmountMustBePositive
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.accounts[id]
	if !ok {
		return 0, fmt.Errorf("account %q: %w", id, account.ErrAccountNotFound)
	}
	a.Balance += amount
	l.append(a, account.KindDeposit, amount, "")
	return a.Balance, nil
}

// Transfer moves amount between two accounts as an atomic pair inside one
// critical section. Every check — both accounts exist, distinct ids,
// sufficient funds — runs before either side mutates, so a failure on the
// credit leg can never leave the debit applied.
func (l *Ledger) Transfer(fromID, toID string, amount money.Amount) error {
	if amount <= 0 {
		return account.ErrAmountMustBePositive
	}
	if fromID == toID {
		return account.ErrCannotTransferToSameAccount
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	from, ok := l.accounts[fromID]
	if !ok {
		return fmt.Errorf("account %q: %w", fromID, account.ErrAccountNotFound)
	}
	to, ok := l.accounts[toID]
	if !ok {
		return fmt.Errorf("account %q: %w", toID, account.ErrAccountNotFound)
	}
	if amount > from.Balance {
		return account.ErrInsufficientFunds
	}
	from.Balance -= amount
	to.Balance += amount
	l.append(from, account.KindTransferOut, amount, toID)
	l.append(to, account.KindTransferIn, amount, fromID)
	l.logger.Info("transfer applied",
		"from", fromID, "to", toID, "amount", money.Format(amount))
	return nil
}

// History returns the account's full log in append order.
func (l *Ledger) History(id string) ([]*account.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.accounts[id]; !ok {
		return nil, fmt.Errorf("account %q: %w", id, account.ErrAccountNotFound)
	}
	log := l.history[id]
	out := make([]*account.Transaction, len(log))
	for i, tx := range log {
		cp := *tx
		out[i] = &cp
	}
	return out, nil
}

// append records a transaction against the account's current balance.
// Callers hold the mutex.
func (l *Ledger) append(a *account.Account, kind account.TransactionKind, amount money.Amount, counterpart string) {
	tx := account.NewTransaction(a.ID, kind, amount, a.Balance, counterpart, l.now())
	l.history[a.ID] = append(l.history[a.ID], tx)
}
