// Package reservation orchestrates booking, lookup and cancellation over
// the reservation ledger.
package reservation

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amitrawal/railbank/pkg/domain"
	resdomain "github.com/amitrawal/railbank/pkg/domain/reservation"
	"github.com/amitrawal/railbank/pkg/repository"
	"github.com/amitrawal/railbank/pkg/trains"
	"github.com/go-playground/validator/v10"
)

// ErrCancellationAborted is returned when the caller's confirmation step
// declines the cancellation. The store is untouched.
var ErrCancellationAborted = errors.New("cancellation aborted")

// BookInput carries the caller-supplied reservation fields. Date is the
// journey date as yyyy-MM-dd; anything unparsable falls back to today.
type BookInput struct {
	Passenger string `json:"passenger" validate:"required"`
	Age       int    `json:"age" validate:"gte=0"`
	Gender    string `json:"gender" validate:"required"`
	TrainNo   string `json:"train_no" validate:"required"`
	Class     string `json:"class" validate:"required"`
	Date      string `json:"date"`
	From      string `json:"from" validate:"required"`
	To        string `json:"to" validate:"required"`
}

// ConfirmFunc is the explicit confirmation step a cancellation requires.
// It receives the record about to be removed and returns whether to proceed.
type ConfirmFunc func(r *resdomain.Reservation) bool

// Service books and cancels reservations.
type Service struct {
	repo     repository.ReservationRepository
	gen      *resdomain.Generator
	dir      *trains.Directory
	validate *validator.Validate
	now      func() time.Time
	logger   *slog.Logger
}

// New builds the reservation service on the system clock.
func New(
	repo repository.ReservationRepository,
	gen *resdomain.Generator,
	dir *trains.Directory,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		gen:      gen,
		dir:      dir,
		validate: validator.New(),
		now:      time.Now,
		logger:   logger,
	}
}

// Book validates the input, assigns a PNR, resolves the train name from the
// directory and appends the record.
func (s *Service) Book(owner string, in BookInput) (*resdomain.Reservation, error) {
	log := s.logger.With("context", "Book", "owner", owner)
	if owner == "" {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrValidation)
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	r := &resdomain.Reservation{
		PNR:       s.gen.Next(),
		Owner:     owner,
		Passenger: in.Passenger,
		Age:       in.Age,
		Gender:    in.Gender,
		TrainNo:   in.TrainNo,
		TrainName: s.dir.Name(in.TrainNo),
		Class:     in.Class,
		Date:      resdomain.ParseTravelDate(in.Date, s.now),
		From:      in.From,
		To:        in.To,
	}
	if err := s.repo.Append(r); err != nil {
		log.Error("booking failed", "error", err)
		return nil, err
	}
	log.Info("reservation booked", "pnr", r.PNR, "train", r.TrainNo)
	return r, nil
}

// Find returns the record with the given PNR.
func (s *Service) Find(pnr string) (*resdomain.Reservation, error) {
	return s.repo.FindByPNR(pnr)
}

// ListByOwner returns the requester's reservations in append order.
func (s *Service) ListByOwner(owner string) ([]*resdomain.Reservation, error) {
	return s.repo.ListByOwner(owner)
}

// Cancel removes a reservation. Order of outcomes: unknown PNR is
// domain.ErrNotFound; a PNR owned by someone else is domain.ErrForbidden
// with no mutation; a declined confirmation is ErrCancellationAborted.
// Only after the confirm step approves is the record removed.
func (s *Service) Cancel(pnr, requester string, confirm ConfirmFunc) error {
	log := s.logger.With("context", "Cancel", "pnr", pnr, "requester", requester)
	if pnr == "" {
		return fmt.Errorf("%w: pnr is required", domain.ErrValidation)
	}
	r, err := s.repo.FindByPNR(pnr)
	if err != nil {
		return err
	}
	if r.Owner != requester {
		log.Warn("cancellation forbidden", "owner", r.Owner)
		return fmt.Errorf("reservation belongs to %q: %w", r.Owner, domain.ErrForbidden)
	}
	if confirm != nil && !confirm(r) {
		return ErrCancellationAborted
	}
	if err := s.repo.Remove(pnr); err != nil {
		log.Error("cancellation failed", "error", err)
		return err
	}
	log.Info("reservation cancelled")
	return nil
}
