package ledger_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/ahmedbank/ledger/pkg/bank"
	"github.com/ahmedbank/ledger/pkg/domain"
	"github.com/ahmedbank/ledger/pkg/domain/customer"
	"github.com/ahmedbank/ledger/pkg/money"
	"github.com/ahmedbank/ledger/pkg/service/ledger"
	"github.com/ahmedbank/ledger/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

type nopStore struct{}

func (nopStore) Load(context.Context) ([]storage.CustomerRecord, error) { return nil, nil }
func (nopStore) Save(context.Context, []storage.CustomerRecord) error   { return nil }

func newService(t *testing.T) *ledger.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	b, err := bank.New(context.Background(), nopStore{}, logger)
	require.NoError(t, err)
	return ledger.New(b, logger)
}

func dollars(t *testing.T, amount float64) money.Money {
	t.Helper()
	m, err := money.New(amount)
	require.NoError(t, err)
	return m
}

func TestEnrollAndAccountInfo(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()

	id, err := svc.Enroll(ctx, "Ada", "Lovelace", "pw", true, true)
	require.NoError(t, err)
	assert.Equal(t, "10001", id)

	info, err := svc.AccountInfo(id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", info.FirstName)
	assert.True(t, info.HasChecking)
	assert.True(t, info.HasSavings)
	assert.True(t, info.Active)
	assert.Zero(t, info.CheckingBalance)

	_, err = svc.AccountInfo("99999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOpenAccountMessages(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()
	id, err := svc.Enroll(ctx, "Ada", "Lovelace", "pw", false, false)
	require.NoError(t, err)

	msg, err := svc.OpenAccount(ctx, id, customer.Checking)
	require.NoError(t, err)
	assert.Equal(t, "Checking account added successfully!", msg)

	msg, err = svc.OpenAccount(ctx, id, customer.Checking)
	require.NoError(t, err)
	assert.Equal(t, "You already have a checking account.", msg)

	msg, err = svc.OpenAccount(ctx, id, customer.Savings)
	require.NoError(t, err)
	assert.Equal(t, "Savings account added successfully!", msg)
}

func TestWithdrawMessages(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()
	id, err := svc.Enroll(ctx, "Ada", "Lovelace", "pw", true, false)
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, id, customer.Checking, dollars(t, 40))
	require.NoError(t, err)

	res, err := svc.Withdraw(ctx, id, customer.Checking, dollars(t, 10))
	require.NoError(t, err)
	assert.Equal(t, "Withdrawal successful", res.Message)
	assert.InDelta(t, 30.0, res.NewBalance, 0.001)
	assert.Zero(t, res.FeeCharged)

	// first overdraft
	res, err = svc.Withdraw(ctx, id, customer.Checking, dollars(t, 50))
	require.NoError(t, err)
	assert.Contains(t, res.Message, "Overdraft fee of $35.00 charged")
	assert.Contains(t, res.Message, "(Overdraft #1)")
	assert.InDelta(t, -55.0, res.NewBalance, 0.001)
	assert.False(t, res.Deactivated)

	// second overdraft deactivates
	_, err = svc.Deposit(ctx, id, customer.Checking, dollars(t, 60))
	require.NoError(t, err)
	res, err = svc.Withdraw(ctx, id, customer.Checking, dollars(t, 50))
	require.NoError(t, err)
	assert.True(t, res.Deactivated)
	assert.Contains(t, res.Message, "Account deactivated due to 2 overdrafts")
}

func TestDepositReactivationMessage(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()
	id, err := svc.Enroll(ctx, "Ada", "Lovelace", "pw", true, false)
	require.NoError(t, err)

	// drive the account into deactivation
	_, err = svc.Withdraw(ctx, id, customer.Checking, dollars(t, 10))
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, id, customer.Checking, dollars(t, 50))
	require.NoError(t, err)
	res, err := svc.Withdraw(ctx, id, customer.Checking, dollars(t, 10))
	require.NoError(t, err)
	require.True(t, res.Deactivated)

	dep, err := svc.Deposit(ctx, id, customer.Checking, dollars(t, 100))
	require.NoError(t, err)
	assert.True(t, dep.Reactivated)
	assert.Contains(t, dep.Message, "reactivated")

	info, err := svc.AccountInfo(id)
	require.NoError(t, err)
	assert.True(t, info.Active)
	assert.Zero(t, info.OverdraftCount)
}

func TestTransferInternal(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()
	id, err := svc.Enroll(ctx, "Ada", "Lovelace", "pw", true, true)
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, id, customer.Checking, dollars(t, 100))
	require.NoError(t, err)

	msg, err := svc.TransferInternal(ctx, id, customer.Checking, dollars(t, 40))
	require.NoError(t, err)
	assert.Equal(t, "Transfer successful", msg)

	info, err := svc.AccountInfo(id)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, info.CheckingBalance, 0.001)
	assert.InDelta(t, 40.0, info.SavingsBalance, 0.001)
}

func TestTransferExternal(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()
	from, err := svc.Enroll(ctx, "Ada", "Lovelace", "pw", true, false)
	require.NoError(t, err)
	to, err := svc.Enroll(ctx, "Alan", "Turing", "pw", true, false)
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, from, customer.Checking, dollars(t, 100))
	require.NoError(t, err)

	msg, err := svc.TransferExternal(ctx, from, to, "CHECKING", "CHECKING", dollars(t, 25))
	require.NoError(t, err)
	assert.Contains(t, msg, "Transfer successful!")
	assert.Contains(t, msg, "Alan Turing")

	_, err = svc.TransferExternal(ctx, from, to, "CHECKING", "SAVINGS", dollars(t, 25))
	assert.ErrorIs(t, err, domain.ErrAccountMissing)
}

func TestTransactions(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()
	id, err := svc.Enroll(ctx, "Ada", "Lovelace", "pw", true, false)
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, id, customer.Checking, dollars(t, 100))
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, id, customer.Checking, dollars(t, 30))
	require.NoError(t, err)

	log, err := svc.Transactions(id)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, customer.TxDeposit, log[0].Kind)
	assert.Equal(t, customer.TxWithdrawal, log[1].Kind)

	_, err = svc.Transactions("99999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
