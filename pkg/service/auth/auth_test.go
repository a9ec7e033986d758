package auth_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ahmedbank/ledger/pkg/bank"
	"github.com/ahmedbank/ledger/pkg/config"
	"github.com/ahmedbank/ledger/pkg/domain"
	"github.com/ahmedbank/ledger/pkg/service/auth"
	"github.com/ahmedbank/ledger/pkg/storage"
	"github.com/golang-jwt/jwt/v5"
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

func testService(t *testing.T) (*auth.Service, *bank.Bank) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	b, err := bank.New(context.Background(), nopStore{}, logger)
	require.NoError(t, err)
	cfg := config.Jwt{Secret: "test-secret", Expiry: time.Hour}
	return auth.New(b, cfg, logger), b
}

func TestLogin(t *testing.T) {
	t.Parallel()
	svc, b := testService(t)
	id, err := b.Enroll(context.Background(), "Ada", "Lovelace", "secret", true, false)
	require.NoError(t, err)

	c, token, err := svc.Login(id, "secret")
	require.NoError(t, err)
	assert.Equal(t, id, c.ID())
	assert.NotEmpty(t, token)

	// the token round-trips back to the customer id
	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	got, err := svc.CurrentCustomerID(parsed)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()
	svc, b := testService(t)
	id, err := b.Enroll(context.Background(), "Ada", "Lovelace", "secret", true, false)
	require.NoError(t, err)

	_, _, err = svc.Login(id, "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, _, err = svc.Login("99999", "secret")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCurrentCustomerIDEmptySubject(t *testing.T) {
	t.Parallel()
	svc, _ := testService(t)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{})
	_, err := svc.CurrentCustomerID(token)
	assert.Error(t, err)
}
