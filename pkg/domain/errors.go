// Package domain holds the error taxonomy shared by the ledger core.
// Every condition below is expected and recoverable: operations report
// them as wrapped sentinels, never as panics, and no rejection leaves a
// customer in a partially mutated state.
package domain

import "errors"

var (
	// ErrNotFound is returned when a customer id is not in the registry.
	ErrNotFound = errors.New("customer not found")
	// ErrUnauthorized is returned on a bad credential or an inactive account.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrAccountMissing is returned when an operation targets a sub-account
	// the customer never opened.
	ErrAccountMissing = errors.New("no such account")
	// ErrAccountDeactivated is returned when withdrawals or transfers hit a
	// deactivated account.
	ErrAccountDeactivated = errors.New("account is deactivated")
	// ErrInvalidAmount is returned when an amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrLimitExceeded is returned when a withdrawal exceeds the
	// per-transaction cap.
	ErrLimitExceeded = errors.New("withdrawal limit exceeded")
	// ErrInsufficientFunds is returned when an operation would breach the
	// overdraft floor, or a transfer exceeds the source balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrBothAccountsRequired is returned when an internal transfer is
	// attempted without both checking and savings open.
	ErrBothAccountsRequired = errors.New("both checking and savings accounts required")
	// ErrInvalidAccountKind is returned when a transfer names an account
	// type other than CHECKING or SAVINGS.
	ErrInvalidAccountKind = errors.New("invalid account type")
	// ErrPersistenceFailure is returned when registry state could not be
	// saved; callers must not report the triggering mutation as successful.
	ErrPersistenceFailure = errors.New("failed to persist registry state")
)
