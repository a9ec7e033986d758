package bank_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/ahmedbank/ledger/pkg/bank"
	"github.com/ahmedbank/ledger/pkg/domain"
	"github.com/ahmedbank/ledger/pkg/domain/customer"
	"github.com/ahmedbank/ledger/pkg/money"
	"github.com/ahmedbank/ledger/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

// memStore keeps the last saved snapshot in memory and can be told to
// fail, to exercise the persistence-failure path.
type memStore struct {
	records []storage.CustomerRecord
	saves   int
	failing bool
}

var errStore = errors.New("disk full")

func (s *memStore) Load(context.Context) ([]storage.CustomerRecord, error) {
	if s.failing {
		return nil, errStore
	}
	return s.records, nil
}

func (s *memStore) Save(_ context.Context, records []storage.CustomerRecord) error {
	if s.failing {
		return errStore
	}
	s.saves++
	s.records = records
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newBank(t *testing.T) (*bank.Bank, *memStore) {
	t.Helper()
	store := &memStore{}
	b, err := bank.New(context.Background(), store, testLogger())
	require.NoError(t, err)
	return b, store
}

func dollars(t *testing.T, amount float64) money.Money {
	t.Helper()
	m, err := money.New(amount)
	require.NoError(t, err)
	return m
}

func TestEnrollAssignsSequentialIDs(t *testing.T) {
	t.Parallel()
	b, store := newBank(t)
	ctx := context.Background()

	for i, want := range []string{"10001", "10002", "10003"} {
		id, err := b.Enroll(ctx, "First", "Last", "pw", true, i%2 == 0)
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
	assert.Equal(t, 3, b.Size())
	assert.Equal(t, 3, store.saves, "every enrollment persists")
	assert.Equal(t, "10001", store.records[0].ID, "snapshot keeps enrollment order")
}

func TestEnrollOpensRequestedAccounts(t *testing.T) {
	t.Parallel()
	b, _ := newBank(t)
	ctx := context.Background()

	id, err := b.Enroll(ctx, "Ada", "Lovelace", "pw", true, false)
	require.NoError(t, err)
	c, ok := b.Lookup(id)
	require.True(t, ok)
	assert.True(t, c.HasChecking())
	assert.False(t, c.HasSavings())

	id, err = b.Enroll(ctx, "Alan", "Turing", "pw", false, false)
	require.NoError(t, err)
	c, ok = b.Lookup(id)
	require.True(t, ok)
	assert.False(t, c.HasChecking())
	assert.False(t, c.HasSavings())
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	b, _ := newBank(t)
	ctx := context.Background()
	id, err := b.Enroll(ctx, "Ada", "Lovelace", "secret", true, false)
	require.NoError(t, err)

	c, err := b.Authenticate(id, "secret")
	require.NoError(t, err)
	assert.Equal(t, id, c.ID())

	_, err = b.Authenticate(id, "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = b.Authenticate("99999", "secret")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuthenticateRejectsDeactivated(t *testing.T) {
	t.Parallel()
	b, _ := newBank(t)
	ctx := context.Background()
	id, err := b.Enroll(ctx, "Ada", "Lovelace", "secret", true, false)
	require.NoError(t, err)

	// two overdrafts deactivate the account
	_, err = b.Withdraw(ctx, id, customer.Checking, dollars(t, 10))
	require.NoError(t, err)
	require.NoError(t, b.Deposit(ctx, id, customer.Checking, dollars(t, 50)))
	_, err = b.Withdraw(ctx, id, customer.Checking, dollars(t, 10))
	require.NoError(t, err)

	_, err = b.Authenticate(id, "secret")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestOpenAccount(t *testing.T) {
	t.Parallel()
	b, store := newBank(t)
	ctx := context.Background()
	id, err := b.Enroll(ctx, "Ada", "Lovelace", "pw", false, false)
	require.NoError(t, err)
	savesBefore := store.saves

	already, err := b.OpenAccount(ctx, id, customer.Savings)
	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, savesBefore+1, store.saves)

	already, err = b.OpenAccount(ctx, id, customer.Savings)
	require.NoError(t, err)
	assert.True(t, already)
	assert.Equal(t, savesBefore+1, store.saves, "opening an existing account writes nothing")

	_, err = b.OpenAccount(ctx, "99999", customer.Checking)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransferValidationOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	setup := func(t *testing.T) (*bank.Bank, string, string) {
		b, _ := newBank(t)
		sender, err := b.Enroll(ctx, "Ada", "Lovelace", "pw", true, false)
		require.NoError(t, err)
		receiver, err := b.Enroll(ctx, "Alan", "Turing", "pw", true, false)
		require.NoError(t, err)
		require.NoError(t, b.Deposit(ctx, sender, customer.Checking, dollars(t, 200)))
		return b, sender, receiver
	}

	t.Run("unknown sender", func(t *testing.T) {
		b, _, receiver := setup(t)
		err := b.Transfer(ctx, "99999", receiver, "CHECKING", "CHECKING", dollars(t, 10))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown receiver", func(t *testing.T) {
		b, sender, _ := setup(t)
		err := b.Transfer(ctx, sender, "99999", "CHECKING", "CHECKING", dollars(t, 10))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		b, sender, receiver := setup(t)
		err := b.Transfer(ctx, sender, receiver, "CHECKING", "CHECKING", money.Money{})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("sender lacks the source account", func(t *testing.T) {
		b, sender, receiver := setup(t)
		err := b.Transfer(ctx, sender, receiver, "SAVINGS", "CHECKING", dollars(t, 10))
		assert.ErrorIs(t, err, domain.ErrAccountMissing)
	})

	t.Run("insufficient funds is strict", func(t *testing.T) {
		b, sender, receiver := setup(t)
		err := b.Transfer(ctx, sender, receiver, "CHECKING", "CHECKING", dollars(t, 200.01))
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	})

	t.Run("invalid sender account kind", func(t *testing.T) {
		b, sender, receiver := setup(t)
		err := b.Transfer(ctx, sender, receiver, "MONEY_MARKET", "CHECKING", dollars(t, 10))
		assert.ErrorIs(t, err, domain.ErrInvalidAccountKind)
	})

	t.Run("invalid receiver account kind", func(t *testing.T) {
		b, sender, receiver := setup(t)
		err := b.Transfer(ctx, sender, receiver, "CHECKING", "MONEY_MARKET", dollars(t, 10))
		assert.ErrorIs(t, err, domain.ErrInvalidAccountKind)
	})
}

func TestTransferAtomicity(t *testing.T) {
	t.Parallel()
	b, _ := newBank(t)
	ctx := context.Background()

	sender, err := b.Enroll(ctx, "Ada", "Lovelace", "pw", true, false)
	require.NoError(t, err)
	receiver, err := b.Enroll(ctx, "Alan", "Turing", "pw", true, false)
	require.NoError(t, err)
	require.NoError(t, b.Deposit(ctx, sender, customer.Checking, dollars(t, 200)))

	// receiver has no savings account: the transfer must fail with the
	// sender provably untouched
	err = b.Transfer(ctx, sender, receiver, "CHECKING", "SAVINGS", dollars(t, 50))
	assert.ErrorIs(t, err, domain.ErrAccountMissing)

	s, _ := b.Lookup(sender)
	assert.Equal(t, int64(200_00), s.CheckingBalance().Cents(), "no partial debit")
	assert.Len(t, s.Transactions(), 1, "only the setup deposit is logged")
}

func TestTransferSuccess(t *testing.T) {
	t.Parallel()
	b, store := newBank(t)
	ctx := context.Background()

	sender, err := b.Enroll(ctx, "Ada", "Lovelace", "pw", true, false)
	require.NoError(t, err)
	receiver, err := b.Enroll(ctx, "Alan", "Turing", "pw", false, true)
	require.NoError(t, err)
	require.NoError(t, b.Deposit(ctx, sender, customer.Checking, dollars(t, 200)))

	require.NoError(t, b.Transfer(ctx, sender, receiver, "CHECKING", "SAVINGS", dollars(t, 75)))

	s, _ := b.Lookup(sender)
	r, _ := b.Lookup(receiver)
	assert.Equal(t, int64(125_00), s.CheckingBalance().Cents())
	assert.Equal(t, int64(75_00), r.SavingsBalance().Cents())

	sLog := s.Transactions()
	require.Len(t, sLog, 2)
	assert.Equal(t, customer.TxTransferOut, sLog[1].Kind)
	assert.Contains(t, sLog[1].Description, "Alan Turing")

	rLog := r.Transactions()
	require.Len(t, rLog, 1)
	assert.Equal(t, customer.TxTransferIn, rLog[0].Kind)
	assert.Contains(t, rLog[0].Description, "Ada Lovelace")

	// the transfer persisted the post-transfer balances
	assert.Equal(t, "125.00", store.records[0].Checking.String())
	assert.Equal(t, "75.00", store.records[1].Savings.String())
}

func TestPersistenceFailureSurfaces(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	b, err := bank.New(context.Background(), store, testLogger())
	require.NoError(t, err)
	ctx := context.Background()

	id, err := b.Enroll(ctx, "Ada", "Lovelace", "pw", true, false)
	require.NoError(t, err)

	store.failing = true
	err = b.Deposit(ctx, id, customer.Checking, dollars(t, 10))
	assert.ErrorIs(t, err, domain.ErrPersistenceFailure)

	_, err = b.Enroll(ctx, "Alan", "Turing", "pw", false, false)
	assert.ErrorIs(t, err, domain.ErrPersistenceFailure)
}

func TestHydration(t *testing.T) {
	t.Parallel()
	store := &memStore{records: []storage.CustomerRecord{
		{
			ID:          "10001",
			FirstName:   "Ada",
			LastName:    "Lovelace",
			Password:    "pw",
			HasChecking: true,
			Active:      true,
			Checking:    money.FromCents(-85_00),
		},
	}}
	b, err := bank.New(context.Background(), store, testLogger())
	require.NoError(t, err)

	c, ok := b.Lookup("10001")
	require.True(t, ok)
	assert.Equal(t, int64(-85_00), c.CheckingBalance().Cents())

	// the next enrollment continues the id sequence
	id, err := b.Enroll(context.Background(), "Alan", "Turing", "pw", false, false)
	require.NoError(t, err)
	assert.Equal(t, "10002", id)
}

func TestHydrationRejectsCorruptRecord(t *testing.T) {
	t.Parallel()
	store := &memStore{records: []storage.CustomerRecord{
		{ID: "10001", Active: true, Checking: money.FromCents(100)}, // balance without account
	}}
	_, err := bank.New(context.Background(), store, testLogger())
	assert.Error(t, err)
}
