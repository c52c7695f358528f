package internal

import (
	"fmt"

	"github.com/starford/unitconv/internal/apperr"
	"github.com/starford/unitconv/internal/suggest"
	"github.com/starford/unitconv/internal/units"
)

type unitRole string

const (
	roleSource unitRole = "asal"
	roleTarget unitRole = "tujuan"
)

// UnitError reports unit text that is not in the catalog.
type UnitError struct {
	Role       string
	Text       string
	Suggestion string
}

func (e *UnitError) Error() string {
	msg := fmt.Sprintf("Satuan %s '%s' tidak dikenali.", e.Role, e.Text)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" Apakah maksud Anda '%s'?", e.Suggestion)
	}
	return msg
}

func (e *UnitError) Unwrap() error { return apperr.ErrUnitNotRecognized }

func resolveUnit(role unitRole, text string) (units.Unit, error) {
	if u, ok := units.Resolve(text); ok {
		return u, nil
	}
	hint, _ := suggest.Suggest(text)
	return 0, &UnitError{Role: string(role), Text: text, Suggestion: hint}
}
