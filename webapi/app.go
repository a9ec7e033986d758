// Package webapi is the HTTP shell over the ledger core. It binds the
// request/response contract exposed by pkg/service/ledger to Fiber
// routes; no business rule lives here.
package webapi

import (
	"time"

	"github.com/ahmedbank/ledger/pkg/config"
	"github.com/ahmedbank/ledger/pkg/domain/customer"
	authsvc "github.com/ahmedbank/ledger/pkg/service/auth"
	ledgersvc "github.com/ahmedbank/ledger/pkg/service/ledger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the Fiber application with all ledger routes mounted.
func NewApp(svc *ledgersvc.Service, authSvc *authsvc.Service, cfg *config.AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Post("/register", Register(svc))
	app.Post("/login", Login(authSvc))

	protected := JwtProtected(cfg.Jwt)
	app.Get("/account", protected, AccountInfo(svc, authSvc))
	app.Post("/account/checking", protected, OpenAccount(svc, authSvc, customer.Checking))
	app.Post("/account/savings", protected, OpenAccount(svc, authSvc, customer.Savings))
	app.Post("/account/deposit", protected, Deposit(svc, authSvc))
	app.Post("/account/withdraw", protected, Withdraw(svc, authSvc))
	app.Post("/account/transfer", protected, TransferInternal(svc, authSvc))
	app.Post("/transfer", protected, TransferExternal(svc, authSvc))
	app.Get("/account/transactions", protected, Transactions(svc, authSvc))
	app.Get("/account/statement", protected, Statement(svc, authSvc))

	return app
}
