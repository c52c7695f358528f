// Package models defines the domain types persisted by unitconv.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Number is a float64 whose non-finite values encode as JSON null and decode
// back as NaN.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = Number(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("models: invalid number %s: %w", data, err)
	}
	*n = Number(f)
	return nil
}

// ConversionRecord is one logged conversion attempt. Unit strings are stored
// as typed. Exactly one of Output and Error is set.
type ConversionRecord struct {
	SourceUnit string  `json:"satuan_asal"`
	TargetUnit string  `json:"satuan_tujuan"`
	Input      Number  `json:"nilai_input"`
	Output     *Number `json:"nilai_output,omitempty"`
	Error      *string `json:"pesan_error,omitempty"`
}

// NewSuccess returns a record for a conversion that produced output.
func NewSuccess(from, to string, input, output float64) ConversionRecord {
	out := Number(output)
	return ConversionRecord{SourceUnit: from, TargetUnit: to, Input: Number(input), Output: &out}
}

// NewFailure returns a record for a conversion that failed with msg.
func NewFailure(from, to string, input float64, msg string) ConversionRecord {
	return ConversionRecord{SourceUnit: from, TargetUnit: to, Input: Number(input), Error: &msg}
}

// Failed reports whether the record describes a failed attempt.
func (r ConversionRecord) Failed() bool { return r.Error != nil }

// Validate checks that exactly one of Output and Error is present.
func (r ConversionRecord) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Output,
			validation.When(r.Error == nil, validation.NotNil.Error("required when no error is recorded")),
			validation.When(r.Error != nil, validation.Nil.Error("must be empty when an error is recorded")),
		),
	)
}
