// Package apperr defines the sentinel errors shared across unitconv packages.
package apperr

import "errors"

var (
	ErrUnitNotRecognized = errors.New("unit not recognized")
	ErrCategoryMismatch  = errors.New("category mismatch")
	ErrInvalidNumber     = errors.New("invalid number")
	ErrOutOfDomain       = errors.New("out of domain")
	ErrHistoryCorrupt    = errors.New("history corrupt")
	ErrHistoryIO         = errors.New("history i/o")

	// ErrReported marks a failure whose message was already shown to the user.
	ErrReported = errors.New("already reported")
)
