package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-report/internal/config"
	"github.com/tuanvumaihuynh/product-report/pkg/validator"
)

func validReport() config.Report {
	return config.Report{
		PriceMin:      20,
		PriceMax:      100,
		Prefix:        "D",
		Suffix:        "p",
		Substring:     "Desk",
		NameLength:    5,
		PatternLength: 7,
		PageSize:      3,
	}
}

func TestDefaultValidator(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	t.Run("Should accept default report params", func(t *testing.T) {
		assert.NoError(t, v.Validate(validReport()))
	})

	tests := []struct {
		name   string
		mutate func(*config.Report)
		want   string
	}{
		{
			name:   "zero page size",
			mutate: func(r *config.Report) { r.PageSize = 0 },
			want:   "PageSize: must be greater than or equal to 1",
		},
		{
			name:   "inverted price range",
			mutate: func(r *config.Report) { r.PriceMax = 10 },
			want:   "PriceMax: must be greater than or equal to PriceMin",
		},
		{
			name:   "wildcard in prefix",
			mutate: func(r *config.Report) { r.Prefix = "D%" },
			want:   "Prefix: must contain only alphanumeric characters and spaces",
		},
		{
			name:   "empty substring",
			mutate: func(r *config.Report) { r.Substring = "" },
			want:   "Substring: field is required",
		},
		{
			name:   "pattern length too long",
			mutate: func(r *config.Report) { r.PatternLength = 256 },
			want:   "PatternLength: must be less than or equal to 255",
		},
	}

	for _, tt := range tests {
		t.Run("Should reject "+tt.name, func(t *testing.T) {
			report := validReport()
			tt.mutate(&report)

			err := v.Validate(report)
			require.Error(t, err)
			assert.True(t, validator.IsValidationError(err))
			assert.Equal(t, tt.want, validator.Describe(err))
		})
	}

	t.Run("Should validate seed set enum", func(t *testing.T) {
		assert.NoError(t, v.Validate(config.Seed{Set: config.SeedSetInventory}))

		err := v.Validate(config.Seed{Set: "ALL"})
		require.Error(t, err)
		assert.Equal(t, "Set: invalid enum value: ALL", validator.Describe(err))
	})

	t.Run("Should join several failures", func(t *testing.T) {
		report := validReport()
		report.PageSize = 0
		report.NameLength = -1

		err := v.Validate(report)
		require.Error(t, err)
		assert.Equal(t,
			"NameLength: must be greater than or equal to 0; PageSize: must be greater than or equal to 1",
			validator.Describe(err))
	})
}

func TestDescribe(t *testing.T) {
	t.Run("Should return the message of other errors", func(t *testing.T) {
		err := errors.New("boom")
		assert.False(t, validator.IsValidationError(err))
		assert.Equal(t, "boom", validator.Describe(err))
	})
}
