package webapi

// RegisterRequest enrolls a new customer.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Password  string `json:"password" validate:"required"`
	Checking  bool   `json:"checking"`
	Savings   bool   `json:"savings"`
}

// LoginRequest authenticates a customer.
type LoginRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	CustomerID string `json:"customer_id"`
	FirstName  string `json:"first_name"`
	Token      string `json:"token"`
}

// MoveMoneyRequest is shared by deposits and withdrawals.
type MoveMoneyRequest struct {
	Account string  `json:"account" validate:"required,oneof=CHECKING SAVINGS"`
	Amount  float64 `json:"amount" validate:"required,gt=0"`
}

// InternalTransferRequest moves funds between a customer's own accounts.
type InternalTransferRequest struct {
	FromAccount string  `json:"from_account" validate:"required,oneof=CHECKING SAVINGS"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}

// ExternalTransferRequest moves funds to another customer. Account kinds
// are deliberately not constrained here: the registry coordinator
// validates them in its own documented order.
type ExternalTransferRequest struct {
	ToCustomerID string  `json:"to_customer_id" validate:"required"`
	FromAccount  string  `json:"from_account" validate:"required"`
	ToAccount    string  `json:"to_account" validate:"required"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
}
