// Package credential implements the flat-file credential store: one
// username,secret pair per line, loaded once at startup and appended to on
// registration.
package credential

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/amitrawal/railbank/pkg/domain"
	"github.com/amitrawal/railbank/pkg/domain/user"
)

// Default credential written when the file does not exist yet, so a fresh
// checkout is immediately usable.
const (
	DefaultUsername = "admin"
	DefaultSecret   = "admin123"
)

// Store keeps the credential map in memory, mirrored to the file on Create.
type Store struct {
	mu     sync.Mutex
	path   string
	creds  map[string]*user.Credential
	logger *slog.Logger
}

// New builds a Store for the given file path. Call Load before use.
func New(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		creds:  make(map[string]*user.Credential),
		logger: logger,
	}
}

// Load reads all credentials from the file, creating it with the default
// credential when absent. Malformed lines are skipped silently. On failure
// the in-memory map stays empty.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFile(); err != nil {
		return fmt.Errorf("credential store: %w", err)
	}
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("credential store: %w", err)
	}
	defer f.Close() //nolint:errcheck

	loaded := make(map[string]*user.Credential)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		username, secret, ok := strings.Cut(line, ",")
		if !ok {
			continue
		}
		username = strings.TrimSpace(username)
		if username == "" {
			continue
		}
		loaded[username] = &user.Credential{
			Username: username,
			Secret:   strings.TrimSpace(secret),
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("credential store: %w", err)
	}
	s.creds = loaded
	s.logger.Info("credentials loaded", "path", s.path, "count", len(loaded))
	return nil
}

// Get returns the stored credential for username.
func (s *Store) Get(username string) (*user.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.creds[username]
	if !ok {
		return nil, false
	}
	cp := *c
	return &cp, true
}

// Create appends the credential to the file and then to memory. A failed
// append leaves the in-memory map unchanged, so no partial write is visible.
func (s *Store) Create(c *user.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.creds[c.Username]; ok {
		return fmt.Errorf("username %q: %w", c.Username, domain.ErrAlreadyExists)
	}
	if err := s.appendLine(c); err != nil {
		return fmt.Errorf("credential store: %w", err)
	}
	cp := *c
	s.creds[c.Username] = &cp
	return nil
}

func (s *Store) appendLine(c *user.Credential) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintf(f, "%s,%s\n", c.Username, c.Secret); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return f.Close()
}

func (s *Store) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	s.logger.Info("creating default credentials file", "path", s.path)
	line := fmt.Sprintf("%s,%s\n", DefaultUsername, DefaultSecret)
	return os.WriteFile(s.path, []byte(line), 0o600)
}
