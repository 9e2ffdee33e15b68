package config

import (
	"fmt"
	"strings"
)

type Store struct {
	Driver      StoreDriver `env:"STORE_DRIVER" envDefault:"SQLITE"`
	AutoMigrate bool        `env:"STORE_AUTO_MIGRATE" envDefault:"true"`
}

// StoreDriver selects the persistence engine backing a session.
type StoreDriver uint8

const (
	StoreDriverSQLite StoreDriver = iota
	StoreDriverPostgres
)

func (d StoreDriver) String() string {
	return []string{"SQLITE", "POSTGRES"}[d]
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *StoreDriver) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "SQLITE":
		*d = StoreDriverSQLite
	case "POSTGRES", "POSTGRESQL":
		*d = StoreDriverPostgres
	default:
		return fmt.Errorf("unknown store driver: %s", text)
	}
	return nil
}

func (d StoreDriver) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
