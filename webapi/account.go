package webapi

import (
	"bytes"
	"fmt"

	"github.com/ahmedbank/ledger/pkg/domain/customer"
	"github.com/ahmedbank/ledger/pkg/money"
	authsvc "github.com/ahmedbank/ledger/pkg/service/auth"
	ledgersvc "github.com/ahmedbank/ledger/pkg/service/ledger"
	"github.com/ahmedbank/ledger/pkg/statement"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// AccountInfo returns a handler that reports the authenticated
// customer's account details.
func AccountInfo(svc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := currentCustomerID(c, authSvc)
		if !ok {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "missing user context")
		}
		info, err := svc.AccountInfo(id)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Account information", info)
	}
}

// OpenAccount returns a handler that opens the given sub-account for the
// authenticated customer.
func OpenAccount(svc *ledgersvc.Service, authSvc *authsvc.Service, kind customer.AccountKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := currentCustomerID(c, authSvc)
		if !ok {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "missing user context")
		}
		msg, err := svc.OpenAccount(c.Context(), id, kind)
		if err != nil {
			log.Errorf("Failed to open %s account: %v", kind, err)
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, msg, nil)
	}
}

// Deposit returns a handler that credits one of the authenticated
// customer's sub-accounts.
func Deposit(svc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := currentCustomerID(c, authSvc)
		if !ok {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "missing user context")
		}
		input, err := BindAndValidate[MoveMoneyRequest](c)
		if input == nil {
			return err
		}
		amount, err := money.New(input.Amount)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid amount", err.Error())
		}
		kind, _ := customer.ParseAccountKind(input.Account)
		res, err := svc.Deposit(c.Context(), id, kind, amount)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, res.Message, res)
	}
}

// Withdraw returns a handler that debits one of the authenticated
// customer's sub-accounts, subject to the overdraft rules.
func Withdraw(svc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := currentCustomerID(c, authSvc)
		if !ok {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "missing user context")
		}
		input, err := BindAndValidate[MoveMoneyRequest](c)
		if input == nil {
			return err
		}
		amount, err := money.New(input.Amount)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid amount", err.Error())
		}
		kind, _ := customer.ParseAccountKind(input.Account)
		res, err := svc.Withdraw(c.Context(), id, kind, amount)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, res.Message, res)
	}
}

// TransferInternal returns a handler that moves funds between the
// authenticated customer's own checking and savings.
func TransferInternal(svc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := currentCustomerID(c, authSvc)
		if !ok {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "missing user context")
		}
		input, err := BindAndValidate[InternalTransferRequest](c)
		if input == nil {
			return err
		}
		amount, err := money.New(input.Amount)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid amount", err.Error())
		}
		source, _ := customer.ParseAccountKind(input.FromAccount)
		msg, err := svc.TransferInternal(c.Context(), id, source, amount)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, msg, nil)
	}
}

// TransferExternal returns a handler that moves funds from the
// authenticated customer to another customer through the registry
// coordinator.
func TransferExternal(svc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := currentCustomerID(c, authSvc)
		if !ok {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "missing user context")
		}
		input, err := BindAndValidate[ExternalTransferRequest](c)
		if input == nil {
			return err
		}
		amount, err := money.New(input.Amount)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid amount", err.Error())
		}
		msg, err := svc.TransferExternal(c.Context(), id, input.ToCustomerID, input.FromAccount, input.ToAccount, amount)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, msg, nil)
	}
}

// Transactions returns a handler that lists the authenticated customer's
// audit log.
func Transactions(svc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := currentCustomerID(c, authSvc)
		if !ok {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "missing user context")
		}
		txs, err := svc.Transactions(id)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transactions", txs)
	}
}

// Statement returns a handler that renders the authenticated customer's
// transaction log as a downloadable PDF or XLSX statement.
func Statement(svc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := currentCustomerID(c, authSvc)
		if !ok {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "missing user context")
		}
		format, ok := statement.ParseFormat(c.Query("format", "pdf"))
		if !ok {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid format", "format must be pdf or xlsx")
		}
		cust, err := svc.Customer(id)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		var buf bytes.Buffer
		if err := statement.Write(&buf, cust, format); err != nil {
			log.Errorf("Statement rendering failed: %v", err)
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Statement rendering failed", err.Error())
		}
		contentType := "application/pdf"
		if format == statement.XLSX {
			contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		}
		c.Set(fiber.HeaderContentType, contentType)
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=statement_%s.%s", id, format))
		return c.Send(buf.Bytes())
	}
}
