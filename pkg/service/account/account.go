// Package account exposes ATM-style operations over the account ledger.
package account

import (
	"log/slog"

	"github.com/amitrawal/railbank/pkg/domain/account"
	"github.com/amitrawal/railbank/pkg/money"
	"github.com/amitrawal/railbank/pkg/repository"
)

// Service wraps the ledger with logging. Amount validation and atomicity
// live in the ledger itself so every surface gets identical behavior.
type Service struct {
	ledger repository.AccountLedger
	logger *slog.Logger
}

// New builds the account service.
func New(ledger repository.AccountLedger, logger *slog.Logger) *Service {
	return &Service{ledger: ledger, logger: logger}
}

// Open creates an account with an opening balance.
func (s *Service) Open(id, pin string, balance money.Amount) (*account.Account, error) {
	a, err := s.ledger.Open(id, pin, balance)
	if err != nil {
		s.logger.Warn("account open rejected", "account", id, "error", err)
		return nil, err
	}
	return a, nil
}

// Get returns the account.
func (s *Service) Get(id string) (*account.Account, error) {
	return s.ledger.Get(id)
}

// VerifyPIN checks an account PIN for the ATM login flow.
func (s *Service) VerifyPIN(id, pin string) error {
	return s.ledger.VerifyPIN(id, pin)
}

// Withdraw debits the account and returns the new balance.
func (s *Service) Withdraw(id string, amount money.Amount) (money.Amount, error) {
	bal, err := s.ledger.Withdraw(id, amount)
	if err != nil {
		s.logger.Warn("withdrawal rejected", "account", id, "error", err)
		return 0, err
	}
	s.logger.Info("withdrawal applied",
		"account", id, "amount", money.Format(amount), "balance", money.Format(bal))
	return bal, nil
}

// Deposit credits the account and returns the new balance.
func (s *Service) Deposit(id string, amount money.Amount) (money.Amount, error) {
	bal, err := s.ledger.Deposit(id, amount)
	if err != nil {
		s.logger.Warn("deposit rejected", "account", id, "error", err)
		return 0, err
	}
	s.logger.Info("deposit applied",
		"account", id, "amount", money.Format(amount), "balance", money.Format(bal))
	return bal, nil
}

// Transfer moves amount between two accounts atomically.
func (s *Service) Transfer(fromID, toID string, amount money.Amount) error {
	if err := s.ledger.Transfer(fromID, toID, amount); err != nil {
		s.logger.Warn("transfer rejected",
			"from", fromID, "to", toID, "error", err)
		return err
	}
	return nil
}

// History returns the account's transaction log in append order.
func (s *Service) History(id string) ([]*account.Transaction, error) {
	return s.ledger.History(id)
}
