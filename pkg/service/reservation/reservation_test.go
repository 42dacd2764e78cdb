package reservation_test

import (
	"io"
	"log/slog"
	"math/rand"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	resrepo "github.com/amitrawal/railbank/infra/repository/reservation"
	"github.com/amitrawal/railbank/pkg/domain"
	resdomain "github.com/amitrawal/railbank/pkg/domain/reservation"
	"github.com/amitrawal/railbank/pkg/service/reservation"
	"github.com/amitrawal/railbank/pkg/trains"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pnrShape = regexp.MustCompile(`^\d{17}$`)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T) *reservation.Service {
	t.Helper()
	store, err := resrepo.New(filepath.Join(t.TempDir(), "reservations.csv"), testLogger())
	require.NoError(t, err)
	gen := resdomain.NewGeneratorWith(time.Now, rand.New(rand.NewSource(7)))
	return reservation.New(store, gen, trains.NewDirectory(), testLogger())
}

func bookInput() reservation.BookInput {
	return reservation.BookInput{
		Passenger: "Asha Verma",
		Age:       29,
		Gender:    "F",
		TrainNo:   "12301",
		Class:     "Sleeper",
		Date:      "2024-05-01",
		From:      "Delhi",
		To:        "Mumbai",
	}
}

func TestBookFindListCancelScenario(t *testing.T) {
	svc := newService(t)

	r, err := svc.Book("alice", bookInput())
	require.NoError(t, err)
	assert.Regexp(t, pnrShape, r.PNR)
	assert.Equal(t, "alice", r.Owner)
	assert.Equal(t, "Mumbai Express", r.TrainName)
	assert.Equal(t, "2024-05-01", r.Date.Format(resdomain.DateLayout))

	found, err := svc.Find(r.PNR)
	require.NoError(t, err)
	assert.Equal(t, r, found)

	list, err := svc.ListByOwner("alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Delhi", list[0].From)
	assert.Equal(t, "Mumbai", list[0].To)
	assert.Equal(t, "12301", list[0].TrainNo)

	var confirmedWith *resdomain.Reservation
	err = svc.Cancel(r.PNR, "alice", func(rec *resdomain.Reservation) bool {
		confirmedWith = rec
		return true
	})
	require.NoError(t, err)
	require.NotNil(t, confirmedWith)
	assert.Equal(t, r.PNR, confirmedWith.PNR)

	_, err = svc.Find(r.PNR)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	list, err = svc.ListByOwner("alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBookValidation(t *testing.T) {
	svc := newService(t)

	in := bookInput()
	in.Passenger = ""
	_, err := svc.Book("alice", in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = bookInput()
	in.Age = -1
	_, err = svc.Book("alice", in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Book("", bookInput())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookUnknownTrain(t *testing.T) {
	svc := newService(t)
	in := bookInput()
	in.TrainNo = "99999"
	r, err := svc.Book("alice", in)
	require.NoError(t, err)
	assert.Equal(t, trains.UnknownTrain, r.TrainName)
}

func TestBookLenientDate(t *testing.T) {
	svc := newService(t)
	in := bookInput()
	in.Date = "definitely not a date"
	r, err := svc.Book("alice", in)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format(resdomain.DateLayout), r.Date.Format(resdomain.DateLayout))
}

func TestCancelForbiddenForNonOwner(t *testing.T) {
	svc := newService(t)
	r, err := svc.Book("alice", bookInput())
	require.NoError(t, err)

	confirmCalled := false
	err = svc.Cancel(r.PNR, "mallory", func(*resdomain.Reservation) bool {
		confirmCalled = true
		return true
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.False(t, confirmCalled, "confirmation must not run for non-owners")

	// no mutation happened
	_, err = svc.Find(r.PNR)
	assert.NoError(t, err)
}

func TestCancelDeclinedConfirmation(t *testing.T) {
	svc := newService(t)
	r, err := svc.Book("alice", bookInput())
	require.NoError(t, err)

	err = svc.Cancel(r.PNR, "alice", func(*resdomain.Reservation) bool { return false })
	assert.ErrorIs(t, err, reservation.ErrCancellationAborted)

	_, err = svc.Find(r.PNR)
	assert.NoError(t, err)
}

func TestCancelNotFound(t *testing.T) {
	svc := newService(t)
	err := svc.Cancel("00000000000000000", "alice", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
