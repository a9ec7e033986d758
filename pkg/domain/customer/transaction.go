package customer

import (
	"fmt"
	"time"

	"github.com/ahmedbank/ledger/pkg/money"
	"github.com/google/uuid"
)

// TxKind classifies a balance-affecting event.
type TxKind string

const (
	TxWithdrawal  TxKind = "WITHDRAWAL"
	TxDeposit     TxKind = "DEPOSIT"
	TxTransferOut TxKind = "TRANSFER_OUT"
	TxTransferIn  TxKind = "TRANSFER_IN"
)

// AccountKind selects one of a customer's two sub-accounts.
type AccountKind string

const (
	Checking AccountKind = "CHECKING"
	Savings  AccountKind = "SAVINGS"
)

// ParseAccountKind converts external input into an AccountKind.
// The boolean is false for anything other than the two known kinds.
func ParseAccountKind(s string) (AccountKind, bool) {
	switch AccountKind(s) {
	case Checking:
		return Checking, true
	case Savings:
		return Savings, true
	default:
		return "", false
	}
}

// Transaction is an immutable audit entry describing one balance-affecting
// event. Records are owned by the customer that created them and are only
// ever appended, in creation order.
type Transaction struct {
	ID           uuid.UUID
	Timestamp    time.Time
	Kind         TxKind
	Account      AccountKind
	Amount       money.Money
	BalanceAfter money.Money
	Description  string
}

func newTransaction(kind TxKind, account AccountKind, amount, balanceAfter money.Money, description string) Transaction {
	return Transaction{
		ID:           uuid.New(),
		Timestamp:    time.Now(),
		Kind:         kind,
		Account:      account,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Description:  description,
	}
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s - %s %s - %s - Balance: %s",
		t.Timestamp.Format("2006-01-02 15:04:05"),
		t.Kind, t.Account, t.Amount.Display(), t.BalanceAfter.Display())
}
