package errors

import (
	stdErrors "errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"not found", ErrNotFound},
		{"invalid argument", ErrInvalidArgument},
		{"insufficient funds", ErrInsufficientFunds},
		{"already processed", ErrAlreadyProcessed},
		{"unauthorized", ErrUnauthorized},
		{"forbidden", ErrForbidden},
		{"already exists", ErrAlreadyExists},
		{"invalid credentials", ErrInvalidCredentials},
		{"duplicate request", ErrDuplicateRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestInvalidArgumentSpecialisations(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"amount", ErrInvalidAmount},
		{"destination", ErrMissingDestination},
		{"minimum", ErrBelowMinimum},
		{"referral", ErrInvalidReferral},
		{"status", ErrInvalidStatus},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, ErrInvalidArgument) {
				t.Fatalf("expected %v to wrap ErrInvalidArgument", tc.err)
			}
			if stdErrors.Is(tc.err, ErrInsufficientFunds) {
				t.Fatalf("did not expect %v to match ErrInsufficientFunds", tc.err)
			}
		})
	}
}
