package webapi

import (
	"github.com/ahmedbank/ledger/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JwtProtected guards a route with bearer-token authentication.
func JwtProtected(cfg config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return ErrorResponseJSON(c, fiber.StatusBadRequest, "Bad Request", err.Error())
	}
	return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid or expired JWT")
}
