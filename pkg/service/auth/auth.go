// Package auth issues and inspects the JWT session tokens the web shell
// uses after a customer logs in. Credentials themselves are checked by
// the registry; this service only wraps the outcome in a signed token.
package auth

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmedbank/ledger/pkg/bank"
	"github.com/ahmedbank/ledger/pkg/config"
	"github.com/ahmedbank/ledger/pkg/domain/customer"
	"github.com/golang-jwt/jwt/v5"
)

// Service authenticates customers against the registry and manages
// session tokens.
type Service struct {
	bank   *bank.Bank
	cfg    config.Jwt
	logger *slog.Logger
}

// New creates an auth service.
func New(b *bank.Bank, cfg config.Jwt, logger *slog.Logger) *Service {
	return &Service{bank: b, cfg: cfg, logger: logger.With("component", "auth")}
}

// Login verifies the customer id and password and returns the customer
// with a signed session token. Inactive accounts cannot log in.
func (s *Service) Login(customerID, password string) (*customer.Customer, string, error) {
	log := s.logger.With("customerID", customerID)
	c, err := s.bank.Authenticate(customerID, password)
	if err != nil {
		log.Warn("login failed", "error", err)
		return nil, "", err
	}
	token, err := s.GenerateToken(c)
	if err != nil {
		log.Error("token generation failed", "error", err)
		return nil, "", err
	}
	log.Info("login successful")
	return c, token, nil
}

// GenerateToken signs a session token for the customer.
func (s *Service) GenerateToken(c *customer.Customer) (string, error) {
	claims := jwt.MapClaims{
		"sub": c.ID(),
		"exp": time.Now().Add(s.cfg.Expiry).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// CurrentCustomerID extracts the customer id from a verified token.
func (s *Service) CurrentCustomerID(token *jwt.Token) (string, error) {
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("token has no subject: %w", err)
	}
	if sub == "" {
		return "", fmt.Errorf("token has an empty subject")
	}
	return sub, nil
}
