package account

import (
	"time"

	"github.com/amitrawal/railbank/pkg/money"
	"github.com/google/uuid"
)

// TransactionKind classifies a ledger entry.
type TransactionKind string

const (
	KindWithdraw    TransactionKind = "withdraw"
	KindDeposit     TransactionKind = "deposit"
	KindTransferIn  TransactionKind = "transfer-in"
	KindTransferOut TransactionKind = "transfer-out"
)

// Transaction is one immutable ledger entry. Entries are append-only and
// returned in chronological (append) order.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   string          `json:"account_id"`
	Kind        TransactionKind `json:"kind"`
	Amount      money.Amount    `json:"amount"`
	Balance     money.Amount    `json:"balance"` // balance snapshot after applying
	Counterpart string          `json:"counterpart,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewTransaction records a ledger entry with a fresh ID. Counterpart is the
// other account of a transfer and empty otherwise.
func NewTransaction(
	accountID string,
	kind TransactionKind,
	amount, balance money.Amount,
	counterpart string,
	created time.Time,
) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		AccountID:   accountID,
		Kind:        kind,
		Amount:      amount,
		Balance:     balance,
		Counterpart: counterpart,
		CreatedAt:   created,
	}
}
