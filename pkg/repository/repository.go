// Package repository defines the data access contracts the services depend
// on. Implementations live under infra/repository.
package repository

import (
	"github.com/amitrawal/railbank/pkg/domain/account"
	"github.com/amitrawal/railbank/pkg/domain/reservation"
	"github.com/amitrawal/railbank/pkg/domain/user"
	"github.com/amitrawal/railbank/pkg/money"
)

// CredentialRepository is the username -> secret directory. It is loaded
// once at startup and only ever grows via Create.
type CredentialRepository interface {
	// Load populates the in-memory map from persistent storage. Malformed
	// lines are skipped silently. A load failure leaves the map empty.
	Load() error
	// Get returns the stored credential for username.
	Get(username string) (*user.Credential, bool)
	// Create appends a credential to memory and storage. It returns
	// domain.ErrAlreadyExists when the username is taken; a storage failure
	// leaves the in-memory state unchanged.
	Create(c *user.Credential) error
}

// ReservationRepository is the append-oriented reservation ledger.
type ReservationRepository interface {
	// Append writes one record to the end of the store.
	Append(r *reservation.Reservation) error
	// FindByPNR scans active records for an exact PNR match and returns
	// domain.ErrNotFound when absent.
	FindByPNR(pnr string) (*reservation.Reservation, error)
	// ListByOwner returns the owner's records in append order; an empty
	// slice when none match.
	ListByOwner(owner string) ([]*reservation.Reservation, error)
	// Remove deletes the record with the given PNR via an atomic rewrite of
	// the whole store: either the removal is fully reflected or the store
	// is untouched. Returns domain.ErrNotFound when absent.
	Remove(pnr string) error
}

// AccountLedger is the in-memory account store with its transaction log.
// Every mutating operation runs in a single critical section, so a transfer
// is never observed half-applied.
type AccountLedger interface {
	// Open creates an account; domain.ErrAlreadyExists when the id is taken.
	Open(id, pin string, balance money.Amount) (*account.Account, error)
	// Get returns a copy of the account or account.ErrAccountNotFound.
	Get(id string) (*account.Account, error)
	// VerifyPIN checks the account PIN; account.ErrInvalidPIN on mismatch.
	VerifyPIN(id, pin string) error
	// Withdraw debits the account and appends a transaction. Returns the
	// new balance, account.ErrInsufficientFunds, or ErrAccountNotFound.
	Withdraw(id string, amount money.Amount) (money.Amount, error)
	// Deposit credits the account and appends a transaction; no upper bound.
	Deposit(id string, amount money.Amount) (money.Amount, error)
	// Transfer debits from and credits to as an atomic pair. If the debit
	// would fail, neither account changes.
	Transfer(fromID, toID string, amount money.Amount) error
	// History returns the account's full log in append order.
	History(id string) ([]*account.Transaction, error)
}
