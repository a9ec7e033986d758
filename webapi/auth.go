package webapi

import (
	authsvc "github.com/ahmedbank/ledger/pkg/service/auth"
	ledgersvc "github.com/ahmedbank/ledger/pkg/service/ledger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
)

// Register returns a handler that enrolls a new customer. Enrollment is
// open: no authentication, no uniqueness constraint on names.
func Register(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[RegisterRequest](c)
		if input == nil {
			return err
		}
		id, err := svc.Enroll(c.Context(), input.FirstName, input.LastName, input.Password, input.Checking, input.Savings)
		if err != nil {
			log.Errorf("Enrollment failed: %v", err)
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated,
			"Registration successful! Please login to access your account.",
			fiber.Map{"customer_id": id})
	}
}

// Login returns a handler that authenticates a customer and issues a
// session token. Unknown ids, bad passwords and deactivated accounts all
// produce the same unauthorized response.
func Login(svc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[LoginRequest](c)
		if input == nil {
			return err
		}
		cust, token, err := svc.Login(input.CustomerID, input.Password)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized",
				"Invalid credentials or account deactivated.")
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Login successful", LoginResponse{
			CustomerID: cust.ID(),
			FirstName:  cust.FirstName(),
			Token:      token,
		})
	}
}

// currentCustomerID resolves the authenticated customer from the request
// context populated by JwtProtected.
func currentCustomerID(c *fiber.Ctx, authSvc *authsvc.Service) (string, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "", false
	}
	id, err := authSvc.CurrentCustomerID(token)
	if err != nil {
		log.Errorf("Failed to parse customer id from token: %v", err)
		return "", false
	}
	return id, true
}
