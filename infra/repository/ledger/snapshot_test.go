package ledger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amitrawal/railbank/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")

	l := newLedger(t)
	_, err := l.Open("A", "1234", money.MustParse("100.00"))
	require.NoError(t, err)
	_, err = l.Open("B", "5678", 0)
	require.NoError(t, err)
	require.NoError(t, l.Transfer("A", "B", money.MustParse("40.00")))
	require.NoError(t, l.Save(path))

	restored := newLedger(t)
	require.NoError(t, restored.Load(path))

	a, err := restored.Get("A")
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("60.00"), a.Balance)
	require.NoError(t, restored.VerifyPIN("A", "1234"))

	hist, err := restored.History("B")
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, "A", hist[0].Counterpart)
}

func TestLoadMissingSnapshotIsNoop(t *testing.T) {
	l := newLedger(t)
	require.NoError(t, l.Load(filepath.Join(t.TempDir(), "absent.json")))
	_, err := l.Get("A")
	assert.Error(t, err)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.json")

	l := newLedger(t)
	_, err := l.Open("A", "1234", money.MustParse("10.00"))
	require.NoError(t, err)
	require.NoError(t, l.Save(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ledger.json", entries[0].Name())
}
