package errors

import (
	"errors"
	"fmt"
)

// Categories recognised by callers and mapped onto transport status codes.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyProcessed  = errors.New("already processed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")

	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateRequest   = errors.New("duplicate request in progress")
)

// Specialisations of ErrInvalidArgument.
var (
	ErrInvalidAmount      = fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	ErrMissingDestination = fmt.Errorf("%w: destination is required", ErrInvalidArgument)
	ErrBelowMinimum       = fmt.Errorf("%w: amount is below minimum redemption value", ErrInvalidArgument)
	ErrInvalidReferral    = fmt.Errorf("%w: invalid referral code", ErrInvalidArgument)
	ErrInvalidStatus      = fmt.Errorf("%w: unsupported status", ErrInvalidArgument)
)
