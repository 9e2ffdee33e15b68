package config

// Report holds the operands of the parameterized reports.
type Report struct {
	PriceMin      float64 `env:"REPORT_PRICE_MIN" envDefault:"20" validate:"gte=0"`
	PriceMax      float64 `env:"REPORT_PRICE_MAX" envDefault:"100" validate:"gtefield=PriceMin"`
	Prefix        string  `env:"REPORT_PREFIX" envDefault:"D" validate:"required,alphanumspace"`
	Suffix        string  `env:"REPORT_SUFFIX" envDefault:"p" validate:"required,alphanumspace"`
	Substring     string  `env:"REPORT_SUBSTRING" envDefault:"Desk" validate:"required,alphanumspace"`
	NameLength    int     `env:"REPORT_NAME_LENGTH" envDefault:"5" validate:"gte=0,lte=255"`
	PatternLength int     `env:"REPORT_PATTERN_LENGTH" envDefault:"7" validate:"gte=0,lte=255"`
	PageSize      int     `env:"REPORT_PAGE_SIZE" envDefault:"3" validate:"gte=1"`
}
