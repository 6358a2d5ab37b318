// Package seeders seeds the database with demo data. Each seeder file
// registers itself from init and the seed CLI command runs them in order.
package seeders

import (
	"context"
	"fmt"
	"sync"
)

// SeederFunc populates one collection.
type SeederFunc func(ctx context.Context) error

var (
	mu     sync.Mutex
	order  []string
	byName = map[string]SeederFunc{}
)

// Register adds a named seeder. Registration order is execution order.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := byName[name]; !dup {
		order = append(order, name)
	}
	byName[name] = fn
}

// Run executes every registered seeder, stopping at the first failure.
func Run(ctx context.Context) error {
	mu.Lock()
	names := append([]string(nil), order...)
	mu.Unlock()

	if len(names) == 0 {
		fmt.Println("  (no seeders registered)")
		return nil
	}

	for _, name := range names {
		mu.Lock()
		fn := byName[name]
		mu.Unlock()

		fmt.Printf("  • Running seeder: %s … ", name)
		if err := fn(ctx); err != nil {
			fmt.Println("FAILED")
			return fmt.Errorf("seeder %q: %w", name, err)
		}
		fmt.Println("done")
	}
	return nil
}
