package ledger_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amitrawal/railbank/infra/repository/ledger"
	"github.com/amitrawal/railbank/pkg/domain"
	"github.com/amitrawal/railbank/pkg/domain/account"
	"github.com/amitrawal/railbank/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return ledger.NewWithClock(testLogger(), func() time.Time { return at })
}

func TestOpenAndGet(t *testing.T) {
	l := newLedger(t)
	a, err := l.Open("A", "1234", money.MustParse("100.00"))
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("100.00"), a.Balance)

	got, err := l.Get("A")
	require.NoError(t, err)
	assert.Equal(t, a.Balance, got.Balance)

	_, err = l.Get("missing")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestOpenRejectsDuplicate(t *testing.T) {
	l := newLedger(t)
	_, err := l.Open("A", "1234", 0)
	require.NoError(t, err)
	_, err = l.Open("A", "5678", 0)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestVerifyPIN(t *testing.T) {
	l := newLedger(t)
	_, err := l.Open("A", "1234", 0)
	require.NoError(t, err)

	assert.NoError(t, l.VerifyPIN("A", "1234"))
	assert.ErrorIs(t, l.VerifyPIN("A", "0000"), account.ErrInvalidPIN)
	assert.ErrorIs(t, l.VerifyPIN("B", "1234"), account.ErrAccountNotFound)
}

func TestWithdraw(t *testing.T) {
	l := newLedger(t)
	_, err := l.Open("A", "1234", money.MustParse("100.00"))
	require.NoError(t, err)

	bal, err := l.Withdraw("A", money.MustParse("40.00"))
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("60.00"), bal)
}

func TestWithdrawInsufficientFundsLeavesBalance(t *testing.T) {
	l := newLedger(t)
	_, err := l.Open("A", "1234", money.MustParse("100.00"))
	require.NoError(t, err)

	_, err = l.Withdraw("A", money.MustParse("150.00"))
	assert.ErrorIs(t, err, account.ErrInsufficientFunds)

	a, err := l.Get("A")
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("100.00"), a.Balance)
}

func TestDeposit(t *testing.T) {
	l := newLedger(t)
	_, err := l.Open("A", "1234", money.MustParse("100.00"))
	require.NoError(t, err)

	bal, err := l.Deposit("A", money.MustParse("50.00"))
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("150.00"), bal)
}

func TestNonPositiveAmountsRejectedUniformly(t *testing.T) {
	l := newLedger(t)
	_, err := l.Open("A", "1234", money.MustParse("100.00"))
	require.NoError(t, err)
	_, err = l.Open("B", "5678", 0)
	require.NoError(t, err)

	for _, amt := range []money.Amount{0, -100} {
		_, err = l.Withdraw("A", amt)
		assert.ErrorIs(t, err, account.ErrAmountMustBePositive)
		_, err = l.Deposit("A", amt)
		assert.ErrorIs(t, err, account.ErrAmountMustBePositive)
		assert.ErrorIs(t, l.Transfer("A", "B", amt), account.ErrAmountMustBePositive)
	}
}

func TestTransfer(t *testing.T) {
	l := newLedger(t)
	_, err := l.Open("A", "1234", money.MustParse("150.00"))
	require.NoError(t, err)
	_, err = l.Open("B", "5678", money.MustParse("10.00"))
	require.NoError(t, err)

	require.NoError(t, l.Transfer("A", "B", money.MustParse("150.00")))

	a, err := l.Get("A")
	require.NoError(t, err)
	b, err := l.Get("B")
	require.NoError(t, err)
	assert.Equal(t, money.Amount(0), a.Balance)
	assert.Equal(t, money.MustParse("160.00"), b.Balance)
}

func TestTransferNeverHalfApplied(t *testing.T) {
	l := newLedger(t)
	_, err := l.Open("A", "1234", money.MustParse("100.00"))
	require.NoError(t, err)
	_, err = l.Open("B", "5678", money.MustParse("20.00"))
	require.NoError(t, err)

	balanced := func() {
		a, err := l.Get("A")
		require.NoError(t, err)
		b, err := l.Get("B")
		require.NoError(t, err)
		assert.Equal(t, money.MustParse("100.00"), a.Balance)
		assert.Equal(t, money.MustParse("20.00"), b.Balance)
	}

	// insufficient funds: debit leg fails, nothing moves
	assert.ErrorIs(t, l.Transfer("A", "B", money.MustParse("500.00")), account.ErrInsufficientFunds)
	balanced()

	// credit leg cannot apply: counterpart missing, nothing moves
	assert.ErrorIs(t, l.Transfer("A", "ghost", money.MustParse("50.00")), account.ErrAccountNotFound)
	balanced()

	// same-account transfer rejected before any mutation
	assert.ErrorIs(t, l.Transfer("A", "A", money.MustParse("50.00")), account.ErrCannotTransferToSameAccount)
	balanced()

	// histories gained no entries from the failed attempts
	hist, err := l.History("A")
	require.NoError(t, err)
	assert.Len(t, hist, 1) // opening deposit only
}

func TestHistoryOrderAndContents(t *testing.T) {
	l := newLedger(t)
	_, err := l.Open("A", "1234", money.MustParse("100.00"))
	require.NoError(t, err)
	_, err = l.Open("B", "5678", 0)
	require.NoError(t, err)

	_, err = l.Withdraw("A", money.MustParse("30.00"))
	require.NoError(t, err)
	_, err = l.Deposit("A", money.MustParse("5.00"))
	require.NoError(t, err)
	require.NoError(t, l.Transfer("A", "B", money.MustParse("25.00")))

	hist, err := l.History("A")
	require.NoError(t, err)
	require.Len(t, hist, 4)

	kinds := []account.TransactionKind{
		account.KindDeposit, // opening balance
		account.KindWithdraw,
		account.KindDeposit,
		account.KindTransferOut,
	}
	for i, k := range kinds {
		assert.Equal(t, k, hist[i].Kind)
	}
	assert.Equal(t, "B", hist[3].Counterpart)
	assert.Equal(t, money.MustParse("50.00"), hist[3].Balance)

	histB, err := l.History("B")
	require.NoError(t, err)
	require.Len(t, histB, 1)
	assert.Equal(t, account.KindTransferIn, histB[0].Kind)
	assert.Equal(t, "A", histB[0].Counterpart)

	_, err = l.History("missing")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}
