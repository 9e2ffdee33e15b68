package config

import "fmt"

type Seed struct {
	Set  SeedSet `env:"SEED_SET" envDefault:"DEMO" validate:"enum"`
	Skip bool    `env:"SEED_SKIP" envDefault:"false"`
}

// SeedSet names one of the built-in sample catalogs.
type SeedSet string

const (
	SeedSetDemo      SeedSet = "DEMO"
	SeedSetInventory SeedSet = "INVENTORY"
)

// Validate reports whether the seed set is a known catalog.
func (s SeedSet) Validate() error {
	switch s {
	case SeedSetDemo, SeedSetInventory:
		return nil
	default:
		return fmt.Errorf("unknown seed set: %q", string(s))
	}
}
