package services

import "errors"

var (
	ErrRecomputeFailed      = errors.New("write succeeded but the snapshot could not be recomputed")
	ErrStoreUnavailable     = errors.New("ledger store unavailable")
	ErrConfirmationRequired = errors.New("cancelling an enrollment requires explicit confirmation")
	ErrUnknownPayment       = errors.New("payment not found")
	ErrUnknownInstallment   = errors.New("installment not found")
	ErrUnknownCredit        = errors.New("credit not found for this client")
	ErrNothingPending       = errors.New("nothing left to pay")
)
