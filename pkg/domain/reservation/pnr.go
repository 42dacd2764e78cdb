package reservation

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

// pnrTimestampLayout is the 14-digit timestamp prefix of a PNR.
const pnrTimestampLayout = "20060102150405"

// pnrPattern matches a well-formed PNR: 14 timestamp digits plus a 3-digit
// random suffix.
var pnrPattern = regexp.MustCompile(`^\d{17}$`)

// Generator produces PNR identifiers from an injected clock and random
// source, so tests can pin both. A PNR is the current timestamp formatted as
// yyyyMMddHHmmss followed by a random number in [100, 999].
//
// Collisions are not checked: at interactive rates the timestamp prefix plus
// the random suffix makes them astronomically unlikely, and uniqueness is an
// accepted weakness of the scheme rather than a guarantee.
type Generator struct {
	now  func() time.Time
	rand *rand.Rand
}

// NewGenerator returns a Generator backed by the system clock and a
// time-seeded random source.
func NewGenerator() *Generator {
	return NewGeneratorWith(time.Now, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewGeneratorWith injects the clock and random source.
func NewGeneratorWith(now func() time.Time, r *rand.Rand) *Generator {
	return &Generator{now: now, rand: r}
}

// Next returns a fresh PNR.
func (g *Generator) Next() string {
	return fmt.Sprintf("%s%d", g.now().Format(pnrTimestampLayout), g.rand.Intn(900)+100)
}

// ValidPNR reports whether s has the shape of a generated PNR.
func ValidPNR(s string) bool {
	return pnrPattern.MatchString(s)
}
