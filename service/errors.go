package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Business failures are sentinel values so controllers can map them to
// status codes with errors.Is. Record-not-found surfaces as
// gorm.ErrRecordNotFound. Anything else out of a transaction is a storage
// error and already rolled back.
var (
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrInsufficientPackaging  = errors.New("insufficient packaging")
	ErrOverpayment            = errors.New("payment exceeds outstanding balance")
	ErrHasPayments            = errors.New("credit sale already has payments")
	ErrAlreadyApplied         = errors.New("advance already applied")
	ErrAdvanceExceedsPurchase = errors.New("advance exceeds purchase total")
	ErrInvalidState           = errors.New("operation not valid in current state")
)

// tolerance is the two-decimal rounding slack used when deciding whether
// a sale or loan is fully settled.
var tolerance = decimal.New(1, -2) // 0.01

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
