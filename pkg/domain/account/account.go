// Package account holds the in-memory account aggregate and its transaction
// records.
package account

import (
	"errors"
	"time"

	"github.com/amitrawal/railbank/pkg/money"
)

var (
	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientFunds is returned when a withdrawal or transfer would
	// take the balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAmountMustBePositive is returned when a transaction amount is zero
	// or negative. It is uniformly an input validation failure, not a
	// domain state failure.
	ErrAmountMustBePositive = errors.New("transaction amount must be positive")

	// ErrCannotTransferToSameAccount is returned when a transfer names the
	// same account on both sides.
	ErrCannotTransferToSameAccount = errors.New("cannot transfer to same account")

	// ErrInvalidPIN is returned when the supplied PIN does not match.
	ErrInvalidPIN = errors.New("invalid pin")
)

// Account is a single ATM account.
//
// Invariants:
//   - Balance never goes negative as a result of a withdrawal or transfer-out.
//   - Balance stays consistent with the running sum of the transaction log.
type Account struct {
	ID        string       `json:"id"`
	PIN       string       `json:"pin"`
	Balance   money.Amount `json:"balance"`
	CreatedAt time.Time    `json:"created_at"`
}

// New validates and constructs an Account. The opening balance may be zero
// but never negative.
func New(id, pin string, balance money.Amount, now time.Time) (*Account, error) {
	if id == "" {
		return nil, errors.New("account id cannot be empty")
	}
	if balance < 0 {
		return nil, ErrAmountMustBePositive
	}
	return &Account{ID: id, PIN: pin, Balance: balance, CreatedAt: now}, nil
}
