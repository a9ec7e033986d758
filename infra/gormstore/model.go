package gormstore

import "github.com/ahmedbank/ledger/pkg/storage"

// Customer is the database row for one customer. It mirrors the external
// record layout column for column; balances are stored in cents.
type Customer struct {
	ID              string `gorm:"primaryKey;size:16"`
	Position        int    `gorm:"not null"` // enrollment order
	FirstName       string `gorm:"size:100"`
	LastName        string `gorm:"size:100"`
	Password        string `gorm:"size:255"`
	HasChecking     bool
	HasSavings      bool
	Active          bool `gorm:"default:true"`
	CheckingBalance int64
	SavingsBalance  int64
	OverdraftCount  int
}

func modelFromRecord(rec storage.CustomerRecord, position int) Customer {
	return Customer{
		ID:              rec.ID,
		Position:        position,
		FirstName:       rec.FirstName,
		LastName:        rec.LastName,
		Password:        rec.Password,
		HasChecking:     rec.HasChecking,
		HasSavings:      rec.HasSavings,
		Active:          rec.Active,
		CheckingBalance: rec.Checking.Cents(),
		SavingsBalance:  rec.Savings.Cents(),
		OverdraftCount:  rec.OverdraftCount,
	}
}
