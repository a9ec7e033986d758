// Package storage defines the persistence contract for the customer
// registry. The registry does not know how records are stored; it hands a
// full snapshot of typed records to a Store after every mutation and
// hydrates from one at startup. The transaction audit log is not part of
// the contract; it lives for the process lifetime only.
package storage

import (
	"context"
	"fmt"

	"github.com/ahmedbank/ledger/pkg/domain/customer"
	"github.com/ahmedbank/ledger/pkg/money"
)

// CustomerRecord is the persisted shape of one customer. Field semantics
// and defaults follow the external layout: boolean fields serialize as
// case-insensitive "true"/"false" and default to false when absent,
// except Active which defaults to true; numeric fields default to zero.
type CustomerRecord struct {
	ID             string
	FirstName      string
	LastName       string
	Password       string
	HasChecking    bool
	HasSavings     bool
	Active         bool
	Checking       money.Money
	Savings        money.Money
	OverdraftCount int
}

// Store persists and restores the full registry snapshot. Save is a
// whole-state overwrite, not an incremental append; implementations
// should make the overwrite atomic (write-then-rename or a transaction).
type Store interface {
	// Load returns all persisted customer records. A store with no prior
	// state returns an empty slice and no error.
	Load(ctx context.Context) ([]CustomerRecord, error)
	// Save overwrites the persisted state with the given records.
	Save(ctx context.Context, records []CustomerRecord) error
}

// RecordFromCustomer snapshots a customer into its persisted shape.
func RecordFromCustomer(c *customer.Customer) CustomerRecord {
	return CustomerRecord{
		ID:             c.ID(),
		FirstName:      c.FirstName(),
		LastName:       c.LastName(),
		Password:       c.Password(),
		HasChecking:    c.HasChecking(),
		HasSavings:     c.HasSavings(),
		Active:         c.Active(),
		Checking:       c.CheckingBalance(),
		Savings:        c.SavingsBalance(),
		OverdraftCount: c.OverdraftCount(),
	}
}

// Customer rebuilds the domain entity from a persisted record. A record
// carrying a non-zero balance for a sub-account it does not hold is
// corrupt and is rejected rather than silently zeroed.
func (r CustomerRecord) Customer() (*customer.Customer, error) {
	if !r.HasChecking && !r.Checking.IsZero() {
		return nil, fmt.Errorf("record %s: checking balance without a checking account", r.ID)
	}
	if !r.HasSavings && !r.Savings.IsZero() {
		return nil, fmt.Errorf("record %s: savings balance without a savings account", r.ID)
	}
	b := customer.NewBuilder().
		WithID(r.ID).
		WithName(r.FirstName, r.LastName).
		WithPassword(r.Password).
		WithActive(r.Active).
		WithOverdraftCount(r.OverdraftCount)
	if r.HasChecking {
		b = b.WithChecking(r.Checking)
	}
	if r.HasSavings {
		b = b.WithSavings(r.Savings)
	}
	return b.Build()
}
