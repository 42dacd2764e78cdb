package reservation_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	store "github.com/amitrawal/railbank/infra/repository/reservation"
	"github.com/amitrawal/railbank/pkg/domain"
	"github.com/amitrawal/railbank/pkg/domain/reservation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reservations.csv")
	s, err := store.New(path, testLogger())
	require.NoError(t, err)
	return s, path
}

func record(pnr, owner string) *reservation.Reservation {
	return &reservation.Reservation{
		PNR:       pnr,
		Owner:     owner,
		Passenger: "Asha Verma",
		Age:       29,
		Gender:    "F",
		TrainNo:   "12301",
		TrainName: "Mumbai Express",
		Class:     "Sleeper",
		Date:      time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		From:      "Delhi",
		To:        "Mumbai",
	}
}

func TestNewCreatesHeaderOnlyFile(t *testing.T) {
	_, path := newStore(t)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "PNR,Username,Name,Age,Gender,TrainNo,TrainName,Class,Date,From,To\n", string(data))
}

func TestAppendAndFind(t *testing.T) {
	s, _ := newStore(t)
	r := record("20240501134509123", "alice")
	require.NoError(t, s.Append(r))

	got, err := s.FindByPNR(r.PNR)
	require.NoError(t, err)
	assert.Equal(t, r, got)

	_, err = s.FindByPNR("00000000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByOwner(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Append(record("20240501134509101", "alice")))
	require.NoError(t, s.Append(record("20240501134509102", "bob")))
	require.NoError(t, s.Append(record("20240501134509103", "alice")))

	got, err := s.ListByOwner("alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	// append order preserved
	assert.Equal(t, "20240501134509101", got[0].PNR)
	assert.Equal(t, "20240501134509103", got[1].PNR)

	none, err := s.ListByOwner("nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestQuotedFieldsSurviveRoundTrip(t *testing.T) {
	s, path := newStore(t)
	r := record("20240501134509104", "alice")
	r.Passenger = `Verma, Asha "AV"`
	r.From = "New Delhi, NDLS"
	require.NoError(t, s.Append(r))

	got, err := s.FindByPNR(r.PNR)
	require.NoError(t, err)
	assert.Equal(t, r.Passenger, got.Passenger)
	assert.Equal(t, r.From, got.From)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Verma, Asha ""AV"""`)
}

func TestRemove(t *testing.T) {
	s, path := newStore(t)
	require.NoError(t, s.Append(record("20240501134509105", "alice")))
	require.NoError(t, s.Append(record("20240501134509106", "bob")))

	require.NoError(t, s.Remove("20240501134509105"))

	_, err := s.FindByPNR("20240501134509105")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// the other record and the header survive the rewrite
	got, err := s.FindByPNR("20240501134509106")
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Owner)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "PNR,Username,"))
}

func TestRemoveNotFound(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Append(record("20240501134509107", "alice")))
	assert.ErrorIs(t, s.Remove("99999999999999999"), domain.ErrNotFound)

	got, err := s.ListByOwner("alice")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRemoveLeavesNoTempFiles(t *testing.T) {
	s, path := newStore(t)
	require.NoError(t, s.Append(record("20240501134509108", "alice")))
	require.NoError(t, s.Remove("20240501134509108"))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}

func TestMalformedRowsAreSkipped(t *testing.T) {
	s, path := newStore(t)
	require.NoError(t, s.Append(record("20240501134509109", "alice")))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString("too,few,fields\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	got, err := s.ListByOwner("alice")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCorruptQuoteRowDoesNotBlockReads(t *testing.T) {
	s, path := newStore(t)
	require.NoError(t, s.Append(record("20240501134509110", "alice")))

	// a stray quote makes this row unparsable as CSV; records on either
	// side of it must stay readable
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString("bad\"quote,row\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, s.Append(record("20240501134509111", "alice")))

	got, err := s.ListByOwner("alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "20240501134509110", got[0].PNR)
	assert.Equal(t, "20240501134509111", got[1].PNR)

	_, err = s.FindByPNR("20240501134509111")
	assert.NoError(t, err)
}
