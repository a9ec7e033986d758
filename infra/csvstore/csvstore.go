// Package csvstore persists the customer registry as a CSV file, one row
// per customer, matching the external on-disk layout the ledger must
// round-trip. Saves are atomic: the snapshot is written to a temp file
// and renamed over the real one, so a crash mid-write never corrupts the
// previous state.
package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ahmedbank/ledger/pkg/money"
	"github.com/ahmedbank/ledger/pkg/storage"
)

var header = []string{
	"id", "first_name", "last_name", "password",
	"has_checking", "has_savings", "active",
	"checking_balance", "savings_balance", "overdraft_count",
}

// Store is a storage.Store backed by a single CSV file.
type Store struct {
	path string
}

// New creates a Store writing to the given file path. The file need not
// exist yet; a missing file loads as an empty registry.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads every customer record from the CSV file. Absent boolean
// fields default to false, except active which defaults to true; absent
// numeric fields default to zero. Boolean values are parsed
// case-insensitively.
func (s *Store) Load(_ context.Context) ([]storage.CustomerRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[name] = i
	}
	if _, ok := cols["id"]; !ok {
		return nil, fmt.Errorf("read %s: missing id column", s.path)
	}

	records := make([]storage.CustomerRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		field := func(name string) string {
			if i, ok := cols[name]; ok && i < len(row) {
				return row[i]
			}
			return ""
		}
		checking, err := parseBalance(field("checking_balance"))
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", field("id"), err)
		}
		savings, err := parseBalance(field("savings_balance"))
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", field("id"), err)
		}
		records = append(records, storage.CustomerRecord{
			ID:             field("id"),
			FirstName:      field("first_name"),
			LastName:       field("last_name"),
			Password:       field("password"),
			HasChecking:    parseBool(field("has_checking"), false),
			HasSavings:     parseBool(field("has_savings"), false),
			Active:         parseBool(field("active"), true),
			Checking:       checking,
			Savings:        savings,
			OverdraftCount: parseInt(field("overdraft_count")),
		})
	}
	return records, nil
}

// Save writes the full snapshot, replacing any previous state.
func (s *Store) Save(_ context.Context, records []storage.CustomerRecord) error {
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close() //nolint:errcheck,gosec
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.ID,
			rec.FirstName,
			rec.LastName,
			rec.Password,
			formatBool(rec.HasChecking),
			formatBool(rec.HasSavings),
			formatBool(rec.Active),
			rec.Checking.String(),
			rec.Savings.String(),
			strconv.Itoa(rec.OverdraftCount),
		}
		if err := w.Write(row); err != nil {
			f.Close() //nolint:errcheck,gosec
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close() //nolint:errcheck,gosec
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return filepath.Clean(s.path)
}

func parseBool(s string, absent bool) bool {
	if s == "" {
		return absent
	}
	return strings.EqualFold(s, "true")
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func parseBalance(s string) (money.Money, error) {
	if s == "" {
		return money.Money{}, nil
	}
	return money.Parse(s)
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
