package billing

import "errors"

var (
	ErrInvoiceNotFound = errors.New("no invoice exists for this appointment")
	ErrAlreadyPaid     = errors.New("invoice has already been paid")
	ErrNothingToPay    = errors.New("no invoice has been issued for this appointment")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
)
