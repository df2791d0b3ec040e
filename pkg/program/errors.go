package program

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrNotFound is returned when an id does not match any program.
	ErrNotFound = errors.New("program not found")

	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("invalid program")
)

// ValidationError describes the first field of a program that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Validate checks the field rules enforced on every stored program.
// The id is not checked; the store owns it.
func (p *Program) Validate() error {
	switch {
	case strings.TrimSpace(p.Brand) == "":
		return invalid("brand", "brand is required")
	case strings.TrimSpace(p.ProgramType) == "":
		return invalid("program_type", "program type is required")
	case strings.TrimSpace(p.Description) == "":
		return invalid("description", "description is required")
	}

	if err := nonNegative("target", p.Target); err != nil {
		return err
	}
	if err := nonNegative("achievement", p.Achievement); err != nil {
		return err
	}
	if err := nonNegative("reward_percentage", p.RewardPercentage); err != nil {
		return err
	}

	if !p.Status.Valid() {
		return invalid("status", fmt.Sprintf("unknown status %q", p.Status))
	}
	if !p.PaymentStatus.Valid() {
		return invalid("payment_status", fmt.Sprintf("unknown payment status %q", p.PaymentStatus))
	}

	if p.StartDate.IsZero() {
		return invalid("start_date", "start date is required")
	}
	if p.EndDate.IsZero() {
		return invalid("end_date", "end date is required")
	}
	if p.EndDate.Before(p.StartDate) {
		return invalid("end_date", "end date is before start date")
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) {
		return invalid(field, "not a number")
	}
	if v < 0 {
		return invalid(field, "must be non-negative")
	}
	return nil
}
