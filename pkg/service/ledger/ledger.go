// Package ledger exposes the registry to external shells through a small
// request/response contract: every operation takes plain values, returns
// a read model or a message, and reports failures as domain errors. No
// business rule lives here; this layer only adds logging and shaping.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmedbank/ledger/pkg/bank"
	"github.com/ahmedbank/ledger/pkg/domain"
	"github.com/ahmedbank/ledger/pkg/domain/customer"
	"github.com/ahmedbank/ledger/pkg/money"
)

// Service is the shell-facing facade over the bank registry.
type Service struct {
	bank   *bank.Bank
	logger *slog.Logger
}

// New creates a Service.
func New(b *bank.Bank, logger *slog.Logger) *Service {
	return &Service{bank: b, logger: logger.With("component", "ledger")}
}

// AccountInfo is the read model for one customer.
type AccountInfo struct {
	CustomerID      string  `json:"customer_id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	HasChecking     bool    `json:"has_checking"`
	HasSavings      bool    `json:"has_savings"`
	CheckingBalance float64 `json:"checking_balance"`
	SavingsBalance  float64 `json:"savings_balance"`
	Active          bool    `json:"active"`
	OverdraftCount  int     `json:"overdraft_count"`
}

func infoFrom(c *customer.Customer) AccountInfo {
	return AccountInfo{
		CustomerID:      c.ID(),
		FirstName:       c.FirstName(),
		LastName:        c.LastName(),
		HasChecking:     c.HasChecking(),
		HasSavings:      c.HasSavings(),
		CheckingBalance: c.CheckingBalance().Float(),
		SavingsBalance:  c.SavingsBalance().Float(),
		Active:          c.Active(),
		OverdraftCount:  c.OverdraftCount(),
	}
}

// Enroll registers a new customer and returns the assigned id.
func (s *Service) Enroll(ctx context.Context, firstName, lastName, password string, wantChecking, wantSavings bool) (string, error) {
	id, err := s.bank.Enroll(ctx, firstName, lastName, password, wantChecking, wantSavings)
	if err != nil {
		s.logger.Error("enrollment failed", "error", err)
		return "", err
	}
	return id, nil
}

// AccountInfo returns the read model for the given customer.
func (s *Service) AccountInfo(customerID string) (AccountInfo, error) {
	c, ok := s.bank.Lookup(customerID)
	if !ok {
		return AccountInfo{}, domain.ErrNotFound
	}
	return infoFrom(c), nil
}

// OpenAccount opens a sub-account and returns a user-facing message. The
// "already have" case is detected here so the core can stay
// unconditional.
func (s *Service) OpenAccount(ctx context.Context, customerID string, kind customer.AccountKind) (string, error) {
	already, err := s.bank.OpenAccount(ctx, customerID, kind)
	if err != nil {
		return "", err
	}
	word := "checking"
	if kind == customer.Savings {
		word = "savings"
	}
	if already {
		return fmt.Sprintf("You already have a %s account.", word), nil
	}
	return fmt.Sprintf("%s account added successfully!", capitalize(word)), nil
}

// DepositResult reports the outcome of a deposit.
type DepositResult struct {
	NewBalance  float64 `json:"new_balance"`
	Reactivated bool    `json:"reactivated"`
	Message     string  `json:"message"`
}

// Deposit credits the sub-account. Reactivation of a deactivated account
// is reported so the shell can tell the customer.
func (s *Service) Deposit(ctx context.Context, customerID string, kind customer.AccountKind, amount money.Money) (DepositResult, error) {
	c, ok := s.bank.Lookup(customerID)
	if !ok {
		return DepositResult{}, domain.ErrNotFound
	}
	wasActive := c.Active()
	if err := s.bank.Deposit(ctx, customerID, kind, amount); err != nil {
		return DepositResult{}, err
	}
	res := DepositResult{
		NewBalance:  c.Balance(kind).Float(),
		Reactivated: !wasActive && c.Active(),
		Message:     "Deposit successful",
	}
	if res.Reactivated {
		res.Message = "Deposit successful. Account reactivated!"
	}
	s.logger.Info("deposit", "customerID", customerID, "account", kind, "amount", amount.String())
	return res, nil
}

// WithdrawResult reports the outcome of a withdrawal.
type WithdrawResult struct {
	NewBalance  float64 `json:"new_balance"`
	FeeCharged  float64 `json:"fee_charged"`
	Deactivated bool    `json:"deactivated"`
	Message     string  `json:"message"`
}

// Withdraw debits the sub-account, applying the overdraft rules.
func (s *Service) Withdraw(ctx context.Context, customerID string, kind customer.AccountKind, amount money.Money) (WithdrawResult, error) {
	res, err := s.bank.Withdraw(ctx, customerID, kind, amount)
	if err != nil {
		return WithdrawResult{}, err
	}
	out := WithdrawResult{
		NewBalance:  res.NewBalance.Float(),
		FeeCharged:  res.Fee.Float(),
		Deactivated: res.Deactivated,
	}
	switch {
	case res.Deactivated:
		out.Message = fmt.Sprintf(
			"Withdrawal successful. Overdraft fee of %s charged. Account deactivated due to %d overdrafts.",
			res.Fee.Display(), res.OverdraftCount)
	case res.Fee.IsPositive():
		out.Message = fmt.Sprintf(
			"Withdrawal successful. Overdraft fee of %s charged. (Overdraft #%d)",
			res.Fee.Display(), res.OverdraftCount)
	default:
		out.Message = "Withdrawal successful"
	}
	s.logger.Info("withdrawal", "customerID", customerID, "account", kind,
		"amount", amount.String(), "deactivated", res.Deactivated)
	return out, nil
}

// TransferInternal moves funds between the customer's own sub-accounts.
func (s *Service) TransferInternal(ctx context.Context, customerID string, source customer.AccountKind, amount money.Money) (string, error) {
	if err := s.bank.TransferInternal(ctx, customerID, source, amount); err != nil {
		return "", err
	}
	s.logger.Info("internal transfer", "customerID", customerID, "from", source, "amount", amount.String())
	return "Transfer successful", nil
}

// TransferExternal moves funds between two customers through the
// registry coordinator.
func (s *Service) TransferExternal(ctx context.Context, fromID, toID, fromKind, toKind string, amount money.Money) (string, error) {
	if err := s.bank.Transfer(ctx, fromID, toID, fromKind, toKind, amount); err != nil {
		return "", err
	}
	to, _ := s.bank.Lookup(toID)
	return fmt.Sprintf("Transfer successful! %s transferred to %s %s",
		amount.Display(), to.FirstName(), to.LastName()), nil
}

// Transactions returns a copy of the customer's audit log.
func (s *Service) Transactions(customerID string) ([]customer.Transaction, error) {
	c, ok := s.bank.Lookup(customerID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c.Transactions(), nil
}

// Customer returns the domain entity, for collaborators that need more
// than the read model (the statement exporter, the CLI shell).
func (s *Service) Customer(customerID string) (*customer.Customer, error) {
	c, ok := s.bank.Lookup(customerID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-('a'-'A')) + s[1:]
}
