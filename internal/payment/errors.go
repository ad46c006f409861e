package payment

import "errors"

var (
	ErrSignatureVerificationFailed = errors.New("webhook signature verification failed")
	ErrMissingCorrelationKey       = errors.New("checkout session has no job_id metadata")
	ErrPaymentNotFound             = errors.New("no payment recorded for checkout session")
	ErrCorrelationMismatch         = errors.New("payment belongs to a different job")
	ErrJobNotFound                 = errors.New("job for payment not found")
)
