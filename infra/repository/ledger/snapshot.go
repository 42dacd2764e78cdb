package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/amitrawal/railbank/pkg/domain/account"
)

// snapshot is the on-disk form of the ledger. It exists so a service restart
// does not wipe accounts; the ledger itself stays in-memory.
type snapshot struct {
	SavedAt  time.Time                         `json:"saved_at"`
	Accounts []*account.Account                `json:"accounts"`
	History  map[string][]*account.Transaction `json:"history"`
}

// Save writes the ledger state as JSON, atomically: the snapshot goes to a
// temp file first and is renamed over the target, so a crash mid-write
// leaves the previous snapshot readable.
func (l *Ledger) Save(path string) error {
	l.mu.Lock()
	snap := snapshot{
		SavedAt:  l.now(),
		Accounts: make([]*account.Account, 0, len(l.accounts)),
		History:  make(map[string][]*account.Transaction, len(l.history)),
	}
	for _, a := range l.accounts {
		cp := *a
		snap.Accounts = append(snap.Accounts, &cp)
	}
	for id, log := range l.history {
		cps := make([]*account.Transaction, len(log))
		for i, tx := range log {
			cp := *tx
			cps[i] = &cp
		}
		snap.History[id] = cps
	}
	l.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".ledger-*.tmp")
	if err != nil {
		return fmt.Errorf("ledger snapshot: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op once renamed

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err = enc.Encode(snap); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("ledger snapshot: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("ledger snapshot: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("ledger snapshot: %w", err)
	}
	return nil
}

// Load replaces the ledger state with a previously saved snapshot. A missing
// file is not an error; the ledger simply starts empty.
func (l *Ledger) Load(path string) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("ledger snapshot: %w", err)
	}
	defer f.Close() //nolint:errcheck

	var snap snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return fmt.Errorf("ledger snapshot: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts = make(map[string]*account.Account, len(snap.Accounts))
	for _, a := range snap.Accounts {
		l.accounts[a.ID] = a
	}
	if snap.History == nil {
		snap.History = make(map[string][]*account.Transaction)
	}
	l.history = snap.History
	l.logger.Info("ledger snapshot loaded", "path", path, "accounts", len(l.accounts))
	return nil
}
