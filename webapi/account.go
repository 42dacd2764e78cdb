package webapi

import (
	"time"

	"github.com/amitrawal/railbank/pkg/domain/account"
	"github.com/amitrawal/railbank/pkg/money"
	acctsvc "github.com/amitrawal/railbank/pkg/service/account"
	"github.com/gofiber/fiber/v2"
)

// OpenAccountInput creates an account. Balance and amounts travel as
// decimal strings ("150.50") and are parsed into minor units.
type OpenAccountInput struct {
	ID      string `json:"id" validate:"required"`
	PIN     string `json:"pin" validate:"required"`
	Balance string `json:"balance"`
}

// AmountInput is the body of withdraw/deposit requests.
type AmountInput struct {
	Amount string `json:"amount" validate:"required"`
}

// TransferInput is the body of transfer requests.
type TransferInput struct {
	From   string `json:"from" validate:"required"`
	To     string `json:"to" validate:"required"`
	Amount string `json:"amount" validate:"required"`
}

// TransactionRead is the wire form of a ledger entry.
type TransactionRead struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	Balance     string `json:"balance"`
	Counterpart string `json:"counterpart,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func toTransactionRead(tx *account.Transaction) TransactionRead {
	return TransactionRead{
		ID:          tx.ID.String(),
		Kind:        string(tx.Kind),
		Amount:      money.Format(tx.Amount),
		Balance:     money.Format(tx.Balance),
		Counterpart: tx.Counterpart,
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	}
}

// AccountRoutes mounts the JWT-protected account endpoints.
func AccountRoutes(app *fiber.App, svc *acctsvc.Service) {
	app.Post("/accounts", OpenAccount(svc))
	app.Get("/accounts/:id", GetAccount(svc))
	app.Post("/accounts/:id/withdraw", Withdraw(svc))
	app.Post("/accounts/:id/deposit", Deposit(svc))
	app.Get("/accounts/:id/transactions", History(svc))
	app.Post("/transfers", Transfer(svc))
}

// OpenAccount creates an account with an optional opening balance.
func OpenAccount(svc *acctsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[OpenAccountInput](c)
		if input == nil {
			return err
		}
		var balance money.Amount
		if input.Balance != "" {
			if balance, err = money.Parse(input.Balance); err != nil {
				return DomainErrorJSON(c, err)
			}
		}
		a, err := svc.Open(input.ID, input.PIN, balance)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Account opened", fiber.Map{
			"id":      a.ID,
			"balance": money.Format(a.Balance),
		})
	}
}

// GetAccount returns the account balance.
func GetAccount(svc *acctsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.Get(c.Params("id"))
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "OK", fiber.Map{
			"id":      a.ID,
			"balance": money.Format(a.Balance),
		})
	}
}

// Withdraw debits the account.
func Withdraw(svc *acctsvc.Service) fiber.Handler {
	return amountHandler("Withdrawal applied", svc.Withdraw)
}

// Deposit credits the account.
func Deposit(svc *acctsvc.Service) fiber.Handler {
	return amountHandler("Deposit applied", svc.Deposit)
}

func amountHandler(message string, op func(string, money.Amount) (money.Amount, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[AmountInput](c)
		if input == nil {
			return err
		}
		amount, err := money.Parse(input.Amount)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		balance, err := op(c.Params("id"), amount)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, message, fiber.Map{
			"id":      c.Params("id"),
			"balance": money.Format(balance),
		})
	}
}

// Transfer moves funds between two accounts atomically.
func Transfer(svc *acctsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[TransferInput](c)
		if input == nil {
			return err
		}
		amount, err := money.Parse(input.Amount)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		if err := svc.Transfer(input.From, input.To, amount); err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transfer applied", fiber.Map{
			"from":   input.From,
			"to":     input.To,
			"amount": money.Format(amount),
		})
	}
}

// History returns the account's transaction log in append order.
func History(svc *acctsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log, err := svc.History(c.Params("id"))
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		out := make([]TransactionRead, len(log))
		for i, tx := range log {
			out[i] = toTransactionRead(tx)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "OK", out)
	}
}
