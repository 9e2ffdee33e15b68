package config

type SQLite struct {
	Path  string `env:"SQLITE_PATH" envDefault:":memory:"`
	Debug bool   `env:"SQLITE_DEBUG" envDefault:"false"`
}
