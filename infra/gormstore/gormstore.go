// Package gormstore persists the customer registry in a relational
// database through GORM. It implements the same whole-snapshot Store
// contract as the CSV file store: each save replaces the previous state
// inside one transaction, which gives the registry the atomicity it
// assumes of its collaborator.
package gormstore

import (
	"context"
	"fmt"

	"github.com/ahmedbank/ledger/pkg/money"
	"github.com/ahmedbank/ledger/pkg/storage"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is a storage.Store backed by a GORM database handle.
type Store struct {
	db *gorm.DB
}

// New wraps an existing database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects to Postgres at the given URL, migrates the schema and
// returns a Store.
func Open(url string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := db.AutoMigrate(&Customer{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Load returns all customer rows in enrollment order.
func (s *Store) Load(ctx context.Context) ([]storage.CustomerRecord, error) {
	var rows []Customer
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	records := make([]storage.CustomerRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, storage.CustomerRecord{
			ID:             row.ID,
			FirstName:      row.FirstName,
			LastName:       row.LastName,
			Password:       row.Password,
			HasChecking:    row.HasChecking,
			HasSavings:     row.HasSavings,
			Active:         row.Active,
			Checking:       money.FromCents(row.CheckingBalance),
			Savings:        money.FromCents(row.SavingsBalance),
			OverdraftCount: row.OverdraftCount,
		})
	}
	return records, nil
}

// Save replaces the persisted state with the given snapshot in one
// transaction.
func (s *Store) Save(ctx context.Context, records []storage.CustomerRecord) error {
	rows := make([]Customer, 0, len(records))
	for i, rec := range records {
		rows = append(rows, modelFromRecord(rec, i))
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM customers").Error; err != nil {
			return fmt.Errorf("clear customers: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert customers: %w", err)
		}
		return nil
	})
}
