// Package convert converts values between units of the same category by
// funnelling them through the category's intermediate unit.
package convert

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/starford/unitconv/internal/apperr"
	"github.com/starford/unitconv/internal/units"
)

// Error is a conversion failure. Kind is one of the apperr sentinels and the
// message is the user-facing text.
type Error struct {
	Kind    error
	From    units.Unit
	To      units.Unit
	Value   float64
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Convert converts value from one unit to another.
//
// Non-finite values are rejected first. Converting a unit to itself returns
// value untouched, skipping the domain check the other paths perform.
func Convert(value float64, from, to units.Unit) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &Error{
			Kind: apperr.ErrInvalidNumber, From: from, To: to, Value: value,
			Message: "Nilai input tidak valid (NaN atau Infinity)",
		}
	}

	if from == to {
		return value, nil
	}

	if from.Category() != to.Category() {
		return 0, &Error{
			Kind: apperr.ErrCategoryMismatch, From: from, To: to, Value: value,
			Message: fmt.Sprintf("Tidak dapat mengonversi satuan yang berbeda kategori: [%s] %s -> [%s] %s",
				from.Category().Name(), from.Name(), to.Category().Name(), to.Name()),
		}
	}

	if min, ok := from.LowerBound(); ok && value < min {
		return 0, &Error{
			Kind: apperr.ErrOutOfDomain, From: from, To: to, Value: value,
			Message: fmt.Sprintf("Nilai %s tidak boleh negatif (< %s)", title(from.Name()), FormatNumber(min)),
		}
	}

	return to.FromBase(from.ToBase(value)), nil
}

// Quantity is a value expressed in a unit.
type Quantity struct {
	Value float64
	Unit  units.Unit
}

func (q Quantity) String() string {
	return FormatNumber(q.Value) + " " + q.Unit.Symbol()
}

// Equivalents returns value expressed in every other member of from's
// category, excluding from and to, in catalog order. Members that fail to
// convert are left out.
func Equivalents(value float64, from, to units.Unit) []Quantity {
	var out []Quantity
	for _, u := range from.Category().Members() {
		if u == from || u == to {
			continue
		}
		v, err := Convert(value, from, u)
		if err != nil {
			continue
		}
		out = append(out, Quantity{Value: v, Unit: u})
	}
	return out
}

// FormatNumber renders v in shortest round-trip decimal form without an
// exponent. Infinities print as "inf" and "-inf".
func FormatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
