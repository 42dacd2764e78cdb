// Package reservation holds the reservation record and its PNR generator.
package reservation

import (
	"time"
)

// DateLayout is the journey date format accepted from callers and written
// to storage.
const DateLayout = "2006-01-02"

// Reservation is one booked journey, owned by the username that created it.
// Only the owner may cancel it.
type Reservation struct {
	PNR       string
	Owner     string
	Passenger string
	Age       int
	Gender    string
	TrainNo   string
	TrainName string
	Class     string
	Date      time.Time
	From      string
	To        string
}

// ParseTravelDate parses a yyyy-MM-dd journey date. Invalid or unparsable
// input falls back to the current date instead of rejecting the booking;
// the lenient policy is part of the contract with the interactive surface.
func ParseTravelDate(s string, now func() time.Time) time.Time {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		n := now()
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	}
	return d
}
