package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrReferenceInvalid = errors.New("a resource ID you specified does not identify an existing resource")
)

// Debt errors
var (
	ErrDebtPaymentDayInvalid = errors.New("the payment day of a debt must be between 1 and 31")
	ErrDebtAmountNegative    = errors.New("balance, APR and minimum payment of a debt must not be negative")
)

// Plan errors
var (
	ErrPlanExists          = errors.New("the budget already has a plan, reset it to create a new one")
	ErrPlanVersionConflict = errors.New("the plan has been changed by another request, please reload it and try again")
)

var ErrTransactionAmountNotPositive = errors.New("the amount of a transaction must be larger than zero")

