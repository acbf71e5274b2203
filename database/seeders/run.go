// Package seeders fills a fresh database with demo data.
//
//	func init() {
//	    seeders.Register("products", SeedProducts)
//	}
//
// Run with: backoffice seed
package seeders

import (
	"fmt"
	"io"
	"sync"

	"gorm.io/gorm"
)

// SeederFunc is the signature for a seed function.
type SeederFunc func(db *gorm.DB) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder. Seeders run in registration order.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// RunAll executes every registered seeder inside one transaction and stops
// on the first error.
func RunAll(db *gorm.DB, out io.Writer) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	if out == nil {
		out = io.Discard
	}
	if len(current) == 0 {
		fmt.Fprintln(out, "  (no seeders registered)")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, e := range current {
			fmt.Fprintf(out, "  • Running seeder: %s … ", e.name)
			if err := e.fn(tx); err != nil {
				fmt.Fprintln(out, "FAILED")
				return fmt.Errorf("seeder %q: %w", e.name, err)
			}
			fmt.Fprintln(out, "done")
		}
		return nil
	})
}
