package models

import "errors"

var (
	ErrNotFound              = errors.New("record not found")
	ErrInstallmentNotPending = errors.New("installment is not pending")
)
