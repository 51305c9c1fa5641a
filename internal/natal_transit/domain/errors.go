package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrEphemeris       = errors.New("ephemeris failure")
	ErrDataConsistency = errors.New("data consistency violation")
	ErrProfileNotFound = errors.New("birth profile not found")
	ErrReceiptNotFound = errors.New("calculation receipt not found")
)

// InvalidInputError names the offending field.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// EphemerisError wraps a provider failure.
type EphemerisError struct {
	Err error
}

func (e *EphemerisError) Error() string {
	return fmt.Sprintf("ephemeris: %v", e.Err)
}

func (e *EphemerisError) Unwrap() []error { return []error{ErrEphemeris, e.Err} }

// DataConsistencyError reports a position no house cusp contains.
type DataConsistencyError struct {
	Entity   EntityName
	Position float64
}

func (e *DataConsistencyError) Error() string {
	return fmt.Sprintf("no house contains %s at %.6f", e.Entity, e.Position)
}

func (e *DataConsistencyError) Unwrap() error { return ErrDataConsistency }
