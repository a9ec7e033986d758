// Package bank owns the collection of customers keyed by customer id:
// enrollment, lookup, authentication, and the cross-customer transfer
// coordinator. Single-account rules stay on the customer entity; this
// package enforces the cross-account ones and persists the registry
// after every mutation.
//
// The registry is not safe for concurrent callers. A host embedding it
// in a concurrent system must serialize access with one exclusive lock
// around the whole registry, because Transfer reads and mutates two
// customers with no internal isolation.
package bank

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmedbank/ledger/pkg/domain"
	"github.com/ahmedbank/ledger/pkg/domain/customer"
	"github.com/ahmedbank/ledger/pkg/money"
	"github.com/ahmedbank/ledger/pkg/storage"
)

const idSeed = 10000

// Bank is the in-memory customer registry backed by a storage.Store.
// Construct with New; the zero value is not usable.
type Bank struct {
	store     storage.Store
	logger    *slog.Logger
	customers map[string]*customer.Customer
	order     []string // enrollment order, kept for stable persistence
}

// New constructs a registry hydrated from the store. A store with no
// prior state yields an empty registry.
func New(ctx context.Context, store storage.Store, logger *slog.Logger) (*Bank, error) {
	records, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	b := &Bank{
		store:     store,
		logger:    logger.With("component", "bank"),
		customers: make(map[string]*customer.Customer, len(records)),
	}
	for _, rec := range records {
		c, err := rec.Customer()
		if err != nil {
			return nil, fmt.Errorf("hydrate customer: %w", err)
		}
		b.customers[c.ID()] = c
		b.order = append(b.order, c.ID())
	}
	b.logger.Info("registry hydrated", "customers", len(b.customers))
	return b, nil
}

// Size returns the number of enrolled customers.
func (b *Bank) Size() int {
	return len(b.customers)
}

// Enroll registers a new customer, opens the requested sub-accounts,
// persists the registry and returns the assigned id. Ids are sequential
// decimal strings starting at "10001"; names need not be unique.
func (b *Bank) Enroll(ctx context.Context, firstName, lastName, password string, wantChecking, wantSavings bool) (string, error) {
	id := fmt.Sprintf("%d", idSeed+len(b.customers)+1)
	c := customer.New(id, firstName, lastName, password)
	if wantChecking {
		c.OpenChecking()
	}
	if wantSavings {
		c.OpenSavings()
	}
	b.customers[id] = c
	b.order = append(b.order, id)
	if err := b.save(ctx); err != nil {
		return "", err
	}
	b.logger.Info("customer enrolled", "customerID", id, "checking", wantChecking, "savings", wantSavings)
	return id, nil
}

// Lookup returns the customer for the given id.
func (b *Bank) Lookup(id string) (*customer.Customer, bool) {
	c, ok := b.customers[id]
	return c, ok
}

// Authenticate returns the customer iff the id is known, the password
// matches exactly and the account is active.
func (b *Bank) Authenticate(id, password string) (*customer.Customer, error) {
	c, ok := b.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !c.Auth(password) {
		return nil, domain.ErrUnauthorized
	}
	return c, nil
}

// OpenAccount opens the given sub-account for the customer and persists.
// The returned flag is true when the sub-account already existed, in
// which case nothing is written.
func (b *Bank) OpenAccount(ctx context.Context, id string, kind customer.AccountKind) (already bool, err error) {
	c, ok := b.customers[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if c.Has(kind) {
		return true, nil
	}
	if kind == customer.Checking {
		c.OpenChecking()
	} else {
		c.OpenSavings()
	}
	return false, b.save(ctx)
}

// Deposit credits the customer's sub-account and persists.
func (b *Bank) Deposit(ctx context.Context, id string, kind customer.AccountKind, amount money.Money) error {
	c, ok := b.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	if err := c.Deposit(kind, amount); err != nil {
		return err
	}
	return b.save(ctx)
}

// Withdraw debits the customer's sub-account, applying the overdraft
// rules, and persists.
func (b *Bank) Withdraw(ctx context.Context, id string, kind customer.AccountKind, amount money.Money) (customer.WithdrawResult, error) {
	c, ok := b.customers[id]
	if !ok {
		return customer.WithdrawResult{}, domain.ErrNotFound
	}
	res, err := c.Withdraw(kind, amount)
	if err != nil {
		return customer.WithdrawResult{}, err
	}
	if res.Deactivated {
		b.logger.Warn("account deactivated by overdraft", "customerID", id, "overdrafts", res.OverdraftCount)
	}
	return res, b.save(ctx)
}

// TransferInternal moves funds between the customer's own sub-accounts
// and persists.
func (b *Bank) TransferInternal(ctx context.Context, id string, source customer.AccountKind, amount money.Money) error {
	c, ok := b.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	if err := c.TransferInternal(source, amount); err != nil {
		return err
	}
	return b.save(ctx)
}

// Transfer moves funds between two different customers. Account kinds
// arrive as raw strings so that validation happens here, in the fixed
// order below; the first failing check wins and nothing is mutated:
//
//	sender exists, receiver exists, sender active, receiver active,
//	amount positive, sender holds and can fund the source account
//	(strict, no overdraft), source kind valid, receiver holds the
//	destination account, destination kind valid.
//
// Only after every check passes are the debit, the credit, their two
// audit records and the persist applied, so no partial transfer is ever
// observable.
func (b *Bank) Transfer(ctx context.Context, fromID, toID, fromKind, toKind string, amount money.Money) error {
	from, ok := b.customers[fromID]
	if !ok {
		return fmt.Errorf("sender %w", domain.ErrNotFound)
	}
	to, ok := b.customers[toID]
	if !ok {
		return fmt.Errorf("receiver %w", domain.ErrNotFound)
	}
	if !from.Active() {
		return fmt.Errorf("sender %w", domain.ErrAccountDeactivated)
	}
	if !to.Active() {
		return fmt.Errorf("receiver %w", domain.ErrAccountDeactivated)
	}
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}

	var source customer.AccountKind
	switch customer.AccountKind(fromKind) {
	case customer.Checking, customer.Savings:
		source = customer.AccountKind(fromKind)
		if !from.Has(source) {
			return fmt.Errorf("sender has no %s account: %w", strings.ToLower(fromKind), domain.ErrAccountMissing)
		}
		if from.Balance(source).LessThan(amount) {
			return fmt.Errorf("insufficient funds in sender's %s account: %w", strings.ToLower(fromKind), domain.ErrInsufficientFunds)
		}
	default:
		return fmt.Errorf("sender %w", domain.ErrInvalidAccountKind)
	}

	var dest customer.AccountKind
	switch customer.AccountKind(toKind) {
	case customer.Checking, customer.Savings:
		dest = customer.AccountKind(toKind)
		if !to.Has(dest) {
			return fmt.Errorf("receiver has no %s account: %w", strings.ToLower(toKind), domain.ErrAccountMissing)
		}
	default:
		return fmt.Errorf("receiver %w", domain.ErrInvalidAccountKind)
	}

	from.TransferDebit(source, amount, fmt.Sprintf("Transfer to %s %s", to.FirstName(), to.LastName()))
	to.TransferCredit(dest, amount, fmt.Sprintf("Transfer from %s %s", from.FirstName(), from.LastName()))

	if err := b.save(ctx); err != nil {
		return err
	}
	b.logger.Info("transfer completed",
		"from", fromID, "to", toID,
		"fromAccount", fromKind, "toAccount", toKind,
		"amount", amount.String())
	return nil
}

func (b *Bank) snapshot() []storage.CustomerRecord {
	records := make([]storage.CustomerRecord, 0, len(b.order))
	for _, id := range b.order {
		records = append(records, storage.RecordFromCustomer(b.customers[id]))
	}
	return records
}

func (b *Bank) save(ctx context.Context) error {
	if err := b.store.Save(ctx, b.snapshot()); err != nil {
		b.logger.Error("registry save failed", "error", err)
		return fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}
	return nil
}
