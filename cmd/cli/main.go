// Command cli is the interactive teller shell. It drives the same
// services as the HTTP server, against the same configured store, so a
// session here and a session over the API see the same ledger.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ahmedbank/ledger/infra/initializer"
	"github.com/ahmedbank/ledger/pkg/config"
	"github.com/ahmedbank/ledger/pkg/domain/customer"
	"github.com/ahmedbank/ledger/pkg/money"
	"github.com/ahmedbank/ledger/pkg/statement"
	log "github.com/charmbracelet/log"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	banner = color.New(color.FgCyan, color.Bold)
	rule   = color.New(color.FgYellow)
	prompt = color.New(color.FgMagenta)
	item   = color.New(color.FgBlue)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
)

type teller struct {
	deps    *initializer.Deps
	scanner *bufio.Scanner
	current string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(slog.Default())
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	deps, err := initializer.InitializeDependencies(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	t := &teller{deps: deps, scanner: bufio.NewScanner(os.Stdin)}
	t.loop()
	return nil
}

func (t *teller) loop() {
	ctx := context.Background()
	for {
		t.menu()
		if t.current == "" {
			switch t.ask("Enter your choice (1-3): ") {
			case "1":
				t.login()
			case "2":
				t.register(ctx)
			case "3":
				banner.Println("Thank you for using AHMED Bank. Goodbye!")
				return
			default:
				bad.Println("Invalid choice. Please try again.")
			}
			continue
		}
		switch t.ask("Enter your choice (1-8): ") {
		case "1":
			t.accountInfo()
		case "2":
			t.openAccount(ctx, customer.Checking)
		case "3":
			t.openAccount(ctx, customer.Savings)
		case "4":
			t.withdraw(ctx)
		case "5":
			t.deposit(ctx)
		case "6":
			t.transfer(ctx)
		case "7":
			t.statement()
		case "8":
			t.current = ""
			good.Println("Logged out successfully.")
		default:
			bad.Println("Invalid choice. Please try again.")
		}
	}
}

func (t *teller) menu() {
	rule.Println("\n" + strings.Repeat("=", 60))
	banner.Println("WELCOME TO AHMED BANK")
	rule.Println(strings.Repeat("=", 60))
	if t.current != "" {
		if c, ok := t.deps.Bank.Lookup(t.current); ok {
			good.Printf("Welcome, %s %s!\n", c.FirstName(), c.LastName())
		}
		item.Println("1. View Account Information")
		item.Println("2. Add Checking Account")
		item.Println("3. Add Savings Account")
		item.Println("4. Withdraw Money")
		item.Println("5. Deposit Money")
		item.Println("6. Transfer Money")
		item.Println("7. Export Statement")
		bad.Println("8. Logout")
	} else {
		item.Println("1. Login")
		item.Println("2. Register New Customer")
		bad.Println("3. Exit")
	}
	rule.Println(strings.Repeat("=", 60))
}

func (t *teller) ask(label string) string {
	prompt.Print(label)
	if !t.scanner.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(t.scanner.Text())
}

// askPassword reads a password without echo when stdin is a terminal,
// falling back to a plain line read when it is not (piped input, tests).
func (t *teller) askPassword(label string) string {
	prompt.Print(label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err == nil {
			return strings.TrimSpace(string(raw))
		}
	}
	if !t.scanner.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(t.scanner.Text())
}

func (t *teller) askAmount(label string) (money.Money, bool) {
	raw := t.ask(label)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		bad.Println("Invalid amount. Please enter a number.")
		return money.Money{}, false
	}
	if f <= 0 {
		bad.Println("Amount must be positive.")
		return money.Money{}, false
	}
	amount, err := money.New(f)
	if err != nil {
		bad.Println("Invalid amount. Please enter a number.")
		return money.Money{}, false
	}
	return amount, true
}

func (t *teller) login() {
	item.Println("\nCUSTOMER LOGIN")
	id := t.ask("Enter Customer ID: ")
	password := t.askPassword("Enter Password: ")

	c, err := t.deps.Bank.Authenticate(id, password)
	if err != nil {
		bad.Println("Invalid credentials or account deactivated.")
		return
	}
	t.current = c.ID()
	good.Printf("Login successful! Welcome, %s!\n", c.FirstName())
}

func (t *teller) register(ctx context.Context) {
	item.Println("\nNEW CUSTOMER REGISTRATION")
	firstName := t.ask("Enter First Name: ")
	lastName := t.ask("Enter Last Name: ")
	password := t.askPassword("Enter Password: ")

	prompt.Println("\nAccount Types:")
	item.Println("1. Checking only")
	item.Println("2. Savings only")
	item.Println("3. Both checking and savings")
	item.Println("4. No accounts (add later)")
	ch := t.ask("Select account type (1-4): ")

	checking := ch == "1" || ch == "3"
	savings := ch == "2" || ch == "3"

	id, err := t.deps.Ledger.Enroll(ctx, firstName, lastName, password, checking, savings)
	if err != nil {
		bad.Println("Registration failed:", err)
		return
	}
	fmt.Printf("Registration successful! Your Customer ID is: %s\n", id)
	fmt.Println("Please login to access your account.")
}

func (t *teller) accountInfo() {
	info, err := t.deps.Ledger.AccountInfo(t.current)
	if err != nil {
		bad.Println("Failed to load account:", err)
		return
	}
	item.Println("\nACCOUNT INFORMATION")
	rule.Println(strings.Repeat("-", 30))
	item.Printf("Customer ID: %s\n", info.CustomerID)
	item.Printf("Name: %s %s\n", info.FirstName, info.LastName)
	item.Printf("Checking Account: %s\n", yesNo(info.HasChecking))
	if info.HasChecking {
		good.Printf("  Balance: $%.2f\n", info.CheckingBalance)
	}
	item.Printf("Savings Account: %s\n", yesNo(info.HasSavings))
	if info.HasSavings {
		good.Printf("  Balance: $%.2f\n", info.SavingsBalance)
	}
	status := "Active"
	if !info.Active {
		status = "Inactive"
	}
	good.Printf("Account Status: %s\n", status)
	bad.Printf("Overdraft Count: %d\n", info.OverdraftCount)
}

func (t *teller) openAccount(ctx context.Context, kind customer.AccountKind) {
	msg, err := t.deps.Ledger.OpenAccount(ctx, t.current, kind)
	if err != nil {
		bad.Println("Failed to open account:", err)
		return
	}
	good.Println(msg)
}

// pickAccount lists the customer's held accounts and returns the chosen
// kind, or false when the choice is invalid or no account is held.
func (t *teller) pickAccount(verb string) (customer.AccountKind, bool) {
	info, err := t.deps.Ledger.AccountInfo(t.current)
	if err != nil {
		bad.Println("Failed to load account:", err)
		return "", false
	}
	if !info.HasChecking && !info.HasSavings {
		bad.Printf("No accounts available for %s.\n", verb)
		return "", false
	}
	prompt.Printf("\nSelect account to %s:\n", verb)
	if info.HasChecking {
		good.Printf("1. Checking Account (Balance: $%.2f)\n", info.CheckingBalance)
	}
	if info.HasSavings {
		good.Printf("2. Savings Account (Balance: $%.2f)\n", info.SavingsBalance)
	}
	switch t.ask("Enter choice (1-2): ") {
	case "1":
		if info.HasChecking {
			return customer.Checking, true
		}
	case "2":
		if info.HasSavings {
			return customer.Savings, true
		}
	}
	bad.Println("Invalid choice.")
	return "", false
}

func (t *teller) withdraw(ctx context.Context) {
	item.Println("\nWITHDRAW MONEY")
	kind, ok := t.pickAccount("withdraw from")
	if !ok {
		return
	}
	amount, ok := t.askAmount("Enter amount to withdraw: $")
	if !ok {
		return
	}
	res, err := t.deps.Ledger.Withdraw(ctx, t.current, kind, amount)
	if err != nil {
		bad.Println(err)
		return
	}
	if res.Deactivated || res.FeeCharged > 0 {
		bad.Println(res.Message)
	} else {
		good.Println(res.Message)
	}
}

func (t *teller) deposit(ctx context.Context) {
	item.Println("\nDEPOSIT MONEY")
	kind, ok := t.pickAccount("deposit to")
	if !ok {
		return
	}
	amount, ok := t.askAmount("Enter amount to deposit: $")
	if !ok {
		return
	}
	res, err := t.deps.Ledger.Deposit(ctx, t.current, kind, amount)
	if err != nil {
		bad.Println("Deposit failed:", err)
		return
	}
	good.Println(res.Message)
}

func (t *teller) transfer(ctx context.Context) {
	item.Println("\nTRANSFER MONEY")
	good.Println("1. Transfer between your own accounts")
	good.Println("2. Transfer to another customer")
	switch t.ask("Enter choice (1-2): ") {
	case "1":
		t.internalTransfer(ctx)
	case "2":
		t.externalTransfer(ctx)
	default:
		bad.Println("Invalid choice.")
	}
}

func (t *teller) internalTransfer(ctx context.Context) {
	info, err := t.deps.Ledger.AccountInfo(t.current)
	if err != nil {
		bad.Println("Failed to load account:", err)
		return
	}
	if !info.HasChecking || !info.HasSavings {
		bad.Println("You need both checking and savings accounts to transfer between them.")
		return
	}
	prompt.Println("\nSelect transfer direction:")
	good.Printf("1. Savings to Checking (Savings Balance: $%.2f)\n", info.SavingsBalance)
	good.Printf("2. Checking to Savings (Checking Balance: $%.2f)\n", info.CheckingBalance)

	var source customer.AccountKind
	switch t.ask("Enter choice (1-2): ") {
	case "1":
		source = customer.Savings
	case "2":
		source = customer.Checking
	default:
		bad.Println("Invalid choice.")
		return
	}
	amount, ok := t.askAmount("Enter amount to transfer: $")
	if !ok {
		return
	}
	msg, err := t.deps.Ledger.TransferInternal(ctx, t.current, source, amount)
	if err != nil {
		bad.Println(err)
		return
	}
	good.Println(msg)
}

func (t *teller) externalTransfer(ctx context.Context) {
	sender, err := t.deps.Ledger.AccountInfo(t.current)
	if err != nil {
		bad.Println("Failed to load account:", err)
		return
	}
	if !sender.HasChecking && !sender.HasSavings {
		bad.Println("No accounts available for transfer.")
		return
	}

	receiverID := t.ask("Enter receiver's Customer ID: ")
	receiver, err := t.deps.Ledger.AccountInfo(receiverID)
	if err != nil {
		bad.Println("Receiver customer not found.")
		return
	}
	if !receiver.Active {
		bad.Println("Receiver account is deactivated.")
		return
	}

	prompt.Println("\nSelect your account to transfer from:")
	if sender.HasChecking {
		good.Printf("1. Checking Account (Balance: $%.2f)\n", sender.CheckingBalance)
	}
	if sender.HasSavings {
		good.Printf("2. Savings Account (Balance: $%.2f)\n", sender.SavingsBalance)
	}
	var fromKind string
	switch t.ask("Enter choice (1-2): ") {
	case "1":
		if sender.HasChecking {
			fromKind = string(customer.Checking)
		}
	case "2":
		if sender.HasSavings {
			fromKind = string(customer.Savings)
		}
	}
	if fromKind == "" {
		bad.Println("Invalid choice.")
		return
	}

	prompt.Printf("\nSelect %s's account to transfer to:\n", receiver.FirstName)
	if receiver.HasChecking {
		good.Println("1. Checking Account")
	}
	if receiver.HasSavings {
		good.Println("2. Savings Account")
	}
	var toKind string
	switch t.ask("Enter choice (1-2): ") {
	case "1":
		if receiver.HasChecking {
			toKind = string(customer.Checking)
		}
	case "2":
		if receiver.HasSavings {
			toKind = string(customer.Savings)
		}
	}
	if toKind == "" {
		bad.Println("Invalid choice.")
		return
	}

	amount, ok := t.askAmount("Enter amount to transfer: $")
	if !ok {
		return
	}

	prompt.Println("\nTransfer Summary:")
	good.Printf("From: %s %s (%s)\n", sender.FirstName, sender.LastName, fromKind)
	good.Printf("To: %s %s (%s)\n", receiver.FirstName, receiver.LastName, toKind)
	good.Printf("Amount: %s\n", amount.Display())
	if !strings.EqualFold(t.ask("Confirm transfer? (y/n): "), "y") {
		bad.Println("Transfer cancelled.")
		return
	}

	msg, err := t.deps.Ledger.TransferExternal(ctx, t.current, receiverID, fromKind, toKind, amount)
	if err != nil {
		bad.Println(err)
		return
	}
	good.Println(msg)
}

func (t *teller) statement() {
	item.Println("\nEXPORT STATEMENT")
	good.Println("1. PDF")
	good.Println("2. XLSX")
	var format statement.Format
	switch t.ask("Enter choice (1-2): ") {
	case "1":
		format = statement.PDF
	case "2":
		format = statement.XLSX
	default:
		bad.Println("Invalid choice.")
		return
	}

	cust, err := t.deps.Ledger.Customer(t.current)
	if err != nil {
		bad.Println("Failed to load account:", err)
		return
	}
	name := fmt.Sprintf("statement_%s.%s", t.current, format)
	f, err := os.Create(name)
	if err != nil {
		bad.Println("Failed to create file:", err)
		return
	}
	defer f.Close() //nolint:errcheck
	if err := statement.Write(f, cust, format); err != nil {
		bad.Println("Failed to write statement:", err)
		return
	}
	good.Printf("Statement written to %s\n", name)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
