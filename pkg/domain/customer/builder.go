package customer

import (
	"errors"

	"github.com/ahmedbank/ledger/pkg/money"
)

// Builder constructs a Customer from persisted state. It is the only way
// to set balances, flags and the overdraft counter directly, and exists
// for store hydration and test fixtures; live mutation goes through the
// Customer operations.
type Builder struct {
	id          string
	firstName   string
	lastName    string
	password    string
	hasChecking bool
	hasSavings  bool
	active      bool
	checking    money.Money
	savings     money.Money
	overdrafts  int
}

// NewBuilder starts a Builder with the defaults of a freshly enrolled
// customer: active, no sub-accounts, zero balances.
func NewBuilder() *Builder {
	return &Builder{active: true}
}

// WithID sets the registry-assigned customer identifier. Mandatory.
func (b *Builder) WithID(id string) *Builder {
	b.id = id
	return b
}

// WithName sets the customer's first and last name.
func (b *Builder) WithName(first, last string) *Builder {
	b.firstName = first
	b.lastName = last
	return b
}

// WithPassword sets the opaque credential.
func (b *Builder) WithPassword(password string) *Builder {
	b.password = password
	return b
}

// WithChecking opens the checking sub-account with the given balance.
func (b *Builder) WithChecking(balance money.Money) *Builder {
	b.hasChecking = true
	b.checking = balance
	return b
}

// WithSavings opens the savings sub-account with the given balance.
func (b *Builder) WithSavings(balance money.Money) *Builder {
	b.hasSavings = true
	b.savings = balance
	return b
}

// WithActive sets the active flag.
func (b *Builder) WithActive(active bool) *Builder {
	b.active = active
	return b
}

// WithOverdraftCount sets the overdraft counter.
func (b *Builder) WithOverdraftCount(n int) *Builder {
	b.overdrafts = n
	return b
}

// Build validates the hydrated state and returns the Customer. A balance
// may only be non-zero when the corresponding sub-account is open, and
// the overdraft counter may not be negative.
func (b *Builder) Build() (*Customer, error) {
	if b.id == "" {
		return nil, errors.New("customer id is required")
	}
	if !b.hasChecking && !b.checking.IsZero() {
		return nil, errors.New("checking balance set without a checking account")
	}
	if !b.hasSavings && !b.savings.IsZero() {
		return nil, errors.New("savings balance set without a savings account")
	}
	if b.overdrafts < 0 {
		return nil, errors.New("overdraft count cannot be negative")
	}
	return &Customer{
		id:          b.id,
		firstName:   b.firstName,
		lastName:    b.lastName,
		password:    b.password,
		hasChecking: b.hasChecking,
		hasSavings:  b.hasSavings,
		active:      b.active,
		checking:    b.checking,
		savings:     b.savings,
		overdrafts:  b.overdrafts,
	}, nil
}
