// Package reservation implements the CSV-backed reservation ledger. The
// file carries a fixed header line; every record is one quoted CSV row.
// Appends go straight to the end of the file; removal rewrites the whole
// file to a temporary location and renames it into place, so a failure
// mid-write never corrupts existing data.
package reservation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/amitrawal/railbank/pkg/domain"
	"github.com/amitrawal/railbank/pkg/domain/reservation"
)

// header is the fixed first line of the store; it is never treated as data.
var header = []string{
	"PNR", "Username", "Name", "Age", "Gender",
	"TrainNo", "TrainName", "Class", "Date", "From", "To",
}

// Store is the file-backed ledger. The file is the source of truth; every
// operation reads or rewrites it under the store mutex, which also gives the
// one-mutation-in-flight serialization the ledger needs in service mode.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// New builds a Store and creates the file (header only) when absent.
func New(path string, logger *slog.Logger) (*Store, error) {
	s := &Store{path: path, logger: logger}
	if err := s.ensureFile(); err != nil {
		return nil, fmt.Errorf("reservation store: %w", err)
	}
	return s, nil
}

// Append writes one record to the end of the store.
func (s *Store) Append(r *reservation.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("reservation store: %w", err)
	}
	w := csv.NewWriter(f)
	if err = w.Write(encode(r)); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("reservation store: %w", err)
	}
	w.Flush()
	if err = w.Error(); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("reservation store: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("reservation store: %w", err)
	}
	s.logger.Info("reservation appended", "pnr", r.PNR, "owner", r.Owner)
	return nil
}

// FindByPNR scans active records for a full-field PNR match.
func (s *Store) FindByPNR(pnr string) (*reservation.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for _, r := range all {
		if r.PNR == pnr {
			return r, nil
		}
	}
	return nil, fmt.Errorf("pnr %q: %w", pnr, domain.ErrNotFound)
}

// ListByOwner returns the owner's records in append order.
func (s *Store) ListByOwner(owner string) ([]*reservation.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return nil, err
	}
	out := []*reservation.Reservation{}
	for _, r := range all {
		if r.Owner == owner {
			out = append(out, r)
		}
	}
	return out, nil
}

// Remove deletes the record with the given PNR by rewriting the store
// without it: read all, filter one out, write to a temp file in the same
// directory, rename over the original. Either the cancellation is fully
// reflected or the previous content stays intact.
func (s *Store) Remove(pnr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return err
	}
	remaining := make([]*reservation.Reservation, 0, len(all))
	found := false
	for _, r := range all {
		if r.PNR == pnr {
			found = true
			continue
		}
		remaining = append(remaining, r)
	}
	if !found {
		return fmt.Errorf("pnr %q: %w", pnr, domain.ErrNotFound)
	}
	if err := s.rewrite(remaining); err != nil {
		return fmt.Errorf("reservation store: %w", err)
	}
	s.logger.Info("reservation removed", "pnr", pnr)
	return nil
}

func (s *Store) rewrite(records []*reservation.Reservation) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".reservations-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op once renamed

	w := csv.NewWriter(tmp)
	if err = w.Write(header); err == nil {
		for _, r := range records {
			if err = w.Write(encode(r)); err != nil {
				break
			}
		}
	}
	if err != nil {
		tmp.Close() //nolint:errcheck
		return err
	}
	w.Flush()
	if err = w.Error(); err != nil {
		tmp.Close() //nolint:errcheck
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// readAll parses rows one at a time, skipping the header and any row that
// does not parse or decode cleanly. Reading row by row keeps one corrupt
// line from blocking access to every record around it.
func (s *Store) readAll() ([]*reservation.Reservation, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("reservation store: %w", err)
	}
	defer f.Close() //nolint:errcheck

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1
	var out []*reservation.Reservation
	for line := 1; ; line++ {
		row, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.logger.Warn("skipping malformed reservation row", "line", line, "error", err)
			continue
		}
		if line == 1 {
			continue // header
		}
		r, err := decode(row)
		if err != nil {
			s.logger.Warn("skipping malformed reservation row", "line", line, "error", err)
			continue
		}
		out = append(out, r)
	}
	if out == nil {
		out = []*reservation.Reservation{}
	}
	return out, nil
}

func (s *Store) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	s.logger.Info("creating reservations data file", "path", s.path)
	return s.rewrite(nil)
}

func encode(r *reservation.Reservation) []string {
	return []string{
		r.PNR,
		r.Owner,
		r.Passenger,
		strconv.Itoa(r.Age),
		r.Gender,
		r.TrainNo,
		r.TrainName,
		r.Class,
		r.Date.Format(reservation.DateLayout),
		r.From,
		r.To,
	}
}

func decode(row []string) (*reservation.Reservation, error) {
	if len(row) != len(header) {
		return nil, fmt.Errorf("want %d fields, got %d", len(header), len(row))
	}
	age, err := strconv.Atoi(row[3])
	if err != nil {
		return nil, fmt.Errorf("age: %w", err)
	}
	date, err := time.Parse(reservation.DateLayout, row[8])
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	return &reservation.Reservation{
		PNR:       row[0],
		Owner:     row[1],
		Passenger: row[2],
		Age:       age,
		Gender:    row[4],
		TrainNo:   row[5],
		TrainName: row[6],
		Class:     row[7],
		Date:      date,
		From:      row[9],
		To:        row[10],
	}, nil
}
