// Package customer implements the per-customer account state machine: two
// sub-account balances, the overdraft counter, the active flag, and the
// append-only transaction log. Every per-account business invariant lives
// here; the registry in pkg/bank only coordinates across customers.
//
// The state machine for withdrawals:
//
//	Active (no overdraft) -> withdrawal drives a balance negative
//	  -> Active (overdraft #1, $35 fee)   -> second overdraft
//	  -> Deactivated (withdrawals and transfers rejected)
//	  -> deposit restoring a non-negative balance
//	  -> Active (overdraft count reset to 0)
package customer

import (
	"fmt"

	"github.com/ahmedbank/ledger/pkg/domain"
	"github.com/ahmedbank/ledger/pkg/money"
)

// Business constants for the withdrawal state machine.
var (
	// WithdrawalLimit is the per-transaction cap on withdrawals.
	WithdrawalLimit = money.FromCents(100_00)
	// OverdraftFloor is the lowest a balance may go as the direct result of
	// a withdrawal, before the fee is applied.
	OverdraftFloor = money.FromCents(-100_00)
	// OverdraftFee is charged whenever a withdrawal drives a balance negative.
	OverdraftFee = money.FromCents(35_00)
)

// MaxOverdrafts is the number of overdrafts that deactivates an account.
const MaxOverdrafts = 2

// Customer owns its checking/savings balances, overdraft counter, active
// flag and transaction log. All fields are unexported: state changes only
// through the operations below, so the invariants cannot be bypassed.
type Customer struct {
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
	log         []Transaction
}

// New creates a customer with no sub-accounts and zero balances.
// The id is assigned by the registry.
func New(id, firstName, lastName, password string) *Customer {
	return &Customer{
		id:        id,
		firstName: firstName,
		lastName:  lastName,
		password:  password,
		active:    true,
	}
}

// ID returns the registry-assigned customer identifier.
func (c *Customer) ID() string { return c.id }

// FirstName returns the customer's first name.
func (c *Customer) FirstName() string { return c.firstName }

// LastName returns the customer's last name.
func (c *Customer) LastName() string { return c.lastName }

// Password returns the stored credential. It is opaque to the core and
// only read back by the persistence layer.
func (c *Customer) Password() string { return c.password }

// HasChecking reports whether a checking sub-account has been opened.
func (c *Customer) HasChecking() bool { return c.hasChecking }

// HasSavings reports whether a savings sub-account has been opened.
func (c *Customer) HasSavings() bool { return c.hasSavings }

// Active reports whether the account accepts withdrawals and transfers.
func (c *Customer) Active() bool { return c.active }

// CheckingBalance returns the checking balance.
func (c *Customer) CheckingBalance() money.Money { return c.checking }

// SavingsBalance returns the savings balance.
func (c *Customer) SavingsBalance() money.Money { return c.savings }

// OverdraftCount returns the number of overdrafts since the last
// reactivating deposit.
func (c *Customer) OverdraftCount() int { return c.overdrafts }

// Transactions returns a copy of the audit log in creation order.
func (c *Customer) Transactions() []Transaction {
	out := make([]Transaction, len(c.log))
	copy(out, c.log)
	return out
}

// Has reports whether the given sub-account has been opened.
func (c *Customer) Has(kind AccountKind) bool {
	if kind == Checking {
		return c.hasChecking
	}
	return c.hasSavings
}

// Balance returns the balance of the given sub-account.
func (c *Customer) Balance(kind AccountKind) money.Money {
	if kind == Checking {
		return c.checking
	}
	return c.savings
}

// OpenChecking marks the checking sub-account as open. The call is
// unconditional; callers wanting an "already have" message must check
// HasChecking first.
func (c *Customer) OpenChecking() { c.hasChecking = true }

// OpenSavings marks the savings sub-account as open. Unconditional, like
// OpenChecking.
func (c *Customer) OpenSavings() { c.hasSavings = true }

// Auth reports whether the given password matches exactly and the account
// is active. Deactivated customers cannot authenticate no matter the
// credential.
func (c *Customer) Auth(password string) bool {
	return c.password == password && c.active
}

func (c *Customer) setBalance(kind AccountKind, m money.Money) {
	if kind == Checking {
		c.checking = m
	} else {
		c.savings = m
	}
}

func (c *Customer) append(kind TxKind, account AccountKind, amount, balanceAfter money.Money, description string) {
	c.log = append(c.log, newTransaction(kind, account, amount, balanceAfter, description))
}

// WithdrawResult reports the outcome of a successful withdrawal.
type WithdrawResult struct {
	NewBalance     money.Money
	Fee            money.Money // zero unless the withdrawal overdrew the balance
	OverdraftCount int
	Deactivated    bool // true when this withdrawal tripped the two-strike rule
}

// Withdraw removes amount from the given sub-account, applying the
// overdraft fee and the two-strike deactivation rule. All checks run
// before any mutation; a rejected withdrawal leaves the customer
// untouched. A successful withdrawal appends exactly one audit record
// (fee and debit combined for overdrafts).
func (c *Customer) Withdraw(kind AccountKind, amount money.Money) (WithdrawResult, error) {
	if !c.Has(kind) {
		return WithdrawResult{}, domain.ErrAccountMissing
	}
	if !c.active {
		return WithdrawResult{}, domain.ErrAccountDeactivated
	}
	if amount.GreaterThan(WithdrawalLimit) {
		return WithdrawResult{}, domain.ErrLimitExceeded
	}
	balance := c.Balance(kind)
	// The cap also applies while the balance is negative. Redundant with
	// the unconditional check above, but kept so the rejection order
	// matches the reference behavior exactly.
	if balance.IsNegative() && amount.GreaterThan(WithdrawalLimit) {
		return WithdrawResult{}, domain.ErrLimitExceeded
	}
	if balance.Sub(amount).LessThan(OverdraftFloor) {
		return WithdrawResult{}, domain.ErrInsufficientFunds
	}

	balance = balance.Sub(amount)
	if balance.IsNegative() {
		balance = balance.Sub(OverdraftFee)
		c.overdrafts++
		c.setBalance(kind, balance)
		c.append(TxWithdrawal, kind, amount, balance,
			fmt.Sprintf("Withdrawal + %s overdraft fee (Overdraft #%d)", OverdraftFee.Display(), c.overdrafts))
		res := WithdrawResult{
			NewBalance:     balance,
			Fee:            OverdraftFee,
			OverdraftCount: c.overdrafts,
		}
		if c.overdrafts >= MaxOverdrafts {
			c.active = false
			res.Deactivated = true
		}
		return res, nil
	}

	c.setBalance(kind, balance)
	c.append(TxWithdrawal, kind, amount, balance, "")
	return WithdrawResult{NewBalance: balance, OverdraftCount: c.overdrafts}, nil
}

// Deposit adds amount to the given sub-account. The only rejection is a
// missing sub-account: deposits are accepted while deactivated and are
// never "too large". A deposit that brings a deactivated account's
// balance back to non-negative reactivates it and clears the overdraft
// counter; this is the only reactivation path.
func (c *Customer) Deposit(kind AccountKind, amount money.Money) error {
	if !c.Has(kind) {
		return domain.ErrAccountMissing
	}
	balance := c.Balance(kind).Add(amount)
	c.setBalance(kind, balance)
	c.append(TxDeposit, kind, amount, balance, "")

	if !c.active && !balance.IsNegative() {
		c.active = true
		c.overdrafts = 0
	}
	return nil
}

// TransferInternal moves amount from the given source sub-account to the
// other one. Both sub-accounts must be open, the account active, the
// amount positive, and the source balance sufficient: internal transfers
// never overdraw. On success one TRANSFER_OUT and one TRANSFER_IN record
// are appended.
func (c *Customer) TransferInternal(source AccountKind, amount money.Money) error {
	if !c.hasChecking || !c.hasSavings {
		return domain.ErrBothAccountsRequired
	}
	if !c.active {
		return domain.ErrAccountDeactivated
	}
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if c.Balance(source).LessThan(amount) {
		return domain.ErrInsufficientFunds
	}

	dest := Checking
	if source == Checking {
		dest = Savings
	}

	c.setBalance(source, c.Balance(source).Sub(amount))
	c.setBalance(dest, c.Balance(dest).Add(amount))

	c.append(TxTransferOut, source, amount, c.Balance(source),
		fmt.Sprintf("Transfer to %s account", kindWord(dest)))
	c.append(TxTransferIn, dest, amount, c.Balance(dest),
		fmt.Sprintf("Transfer from %s account", kindWord(source)))
	return nil
}

// TransferDebit and TransferCredit are the two halves of an external
// transfer. They perform no validation: the registry coordinator checks
// every precondition on both customers before calling either, which is
// what makes the pair atomic from the caller's point of view. They are
// not meant to be called from anywhere else.

func (c *Customer) TransferDebit(kind AccountKind, amount money.Money, description string) {
	c.setBalance(kind, c.Balance(kind).Sub(amount))
	c.append(TxTransferOut, kind, amount, c.Balance(kind), description)
}

// TransferCredit is the receiving half of an external transfer; see
// TransferDebit.
func (c *Customer) TransferCredit(kind AccountKind, amount money.Money, description string) {
	c.setBalance(kind, c.Balance(kind).Add(amount))
	c.append(TxTransferIn, kind, amount, c.Balance(kind), description)
}

func kindWord(kind AccountKind) string {
	if kind == Checking {
		return "checking"
	}
	return "savings"
}
