// Package money represents monetary amounts as integers in the smallest
// currency unit to avoid floating point drift. The ledger deals in a single
// currency, so there is no currency code attached to an amount.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Amount is a monetary value in the smallest currency unit (e.g. paise).
type Amount = int64

// ErrInvalidAmount is returned when a string cannot be parsed as an amount
// or carries more than two decimal places.
var ErrInvalidAmount = errors.New("invalid amount")

// Parse converts a decimal string such as "150.50" into an Amount.
// At most two decimal places are accepted. Only an optional leading minus
// sign and digits are valid; anything else is ErrInvalidAmount.
func Parse(s string) (Amount, error) {
	in := strings.TrimSpace(s)
	s = in
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, in)
	}
	if !digits(whole) || !digits(frac) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, in)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: more than two decimal places", ErrInvalidAmount)
	}
	if whole == "" {
		whole = "0"
	}
	for len(frac) < 2 {
		frac += "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, in)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, in)
	}
	a := w*100 + f
	if neg {
		a = -a
	}
	return a, nil
}

// digits reports whether s is all ASCII digits. The empty string passes so
// "150." and ".50" parse; callers reject the fully empty case themselves.
func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MustParse is Parse for constants and test fixtures; it panics on error.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Format renders an Amount as a decimal string with two places, e.g. 15050 -> "150.50".
func Format(a Amount) string {
	sign := ""
	if a < 0 {
		sign = "-"
		a = -a
	}
	return fmt.Sprintf("%s%d.%02d", sign, a/100, a%100)
}
