// Package playtime maps between BAPS3 microsecond positions and the units
// humans use for them.
package playtime

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
)

// Unit is a time unit accepted on the command line.
type Unit int

// Units, largest first.
const (
	Hours Unit = iota
	Minutes
	Seconds
	Milliseconds
	Microseconds
)

// Suffix returns the short suffix of the unit ("h", "ms", ...).
func (u Unit) Suffix() string {
	switch u {
	case Hours:
		return "h"
	case Minutes:
		return "m"
	case Seconds:
		return "s"
	case Milliseconds:
		return "ms"
	default:
		return "us"
	}
}

// ErrTooLarge is returned when a position does not fit in a microsecond
// count.
var ErrTooLarge = errors.New("position too large")

// factor returns the number of microseconds in one of the unit.
func (u Unit) factor() uint64 {
	switch u {
	case Hours:
		return 60 * 60 * 1000 * 1000
	case Minutes:
		return 60 * 1000 * 1000
	case Seconds:
		return 1000 * 1000
	case Milliseconds:
		return 1000
	default:
		return 1
	}
}

// Micros returns n of the unit in microseconds, the BAPS3 base unit.
// It fails with ErrTooLarge rather than wrapping around.
func (u Unit) Micros(n uint64) (uint64, error) {
	hi, lo := bits.Mul64(n, u.factor())
	if hi != 0 {
		return 0, ErrTooLarge
	}
	return lo, nil
}

// UnitFromFlags picks a unit from a set of unit flags.
// Larger units take precedence; with no flag set the unit is microseconds.
func UnitFromFlags(h, m, s, ms bool) Unit {
	switch {
	case h:
		return Hours
	case m:
		return Minutes
	case s:
		return Seconds
	case ms:
		return Milliseconds
	default:
		return Microseconds
	}
}

// Format renders a microsecond position as H:MM:SS. The hour component is
// omitted when zero; minutes and seconds are always two digits.
func Format(micros uint64) string {
	secs := micros / 1000 / 1000
	h := secs / 3600
	m := (secs / 60) % 60
	s := secs % 60

	if h == 0 {
		return fmt.Sprintf("%02d:%02d", m, s)
	}
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// ParseMicros parses a non-negative decimal microsecond count, as carried
// by TIME notifications.
func ParseMicros(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
