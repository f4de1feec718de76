package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

func fixedClock(year int, month time.Month, day int) validator.Clock {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	t.Run("date layout", func(t *testing.T) {
		t.Parallel()
		d, err := validator.ParseDate("2008-03-15")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2008, time.March, 15, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		t.Parallel()
		d, err := validator.ParseDate(" 2008-03-15\n")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2008, time.March, 15, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Parallel()
		for _, v := range []string{"", "   ", "15/03/2008", "2008-13-01", "not a date", "2008-03-15T10:00:00Z", "2008-3-15"} {
			_, err := validator.ParseDate(v)
			assert.ErrorIs(t, err, validator.ErrInvalidDate, v)
		}
	})
}

func TestAgeOn(t *testing.T) {
	t.Parallel()

	birth := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 25, validator.AgeOn(birth, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, validator.AgeOn(birth, time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, validator.AgeOn(birth, time.Date(2025, time.May, 30, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 25, validator.AgeOn(birth, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMinAgeAt(t *testing.T) {
	t.Parallel()

	rule := validator.MinAgeAt(16, fixedClock(2025, time.June, 15))

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"exactly sixteen today", "2009-06-15", true},
		{"one day short of sixteen", "2009-06-16", false},
		{"well over", "1990-01-01", true},
		{"fifteen", "2010-01-01", false},
		{"empty", "", false},
		{"garbage", "yesterday", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := rule.Evaluate("dob", tt.value, nil)
			assert.Equal(t, tt.valid, out.IsValid())
			if !tt.valid {
				assert.Equal(t, "You must be 16+", out.Message())
			}
		})
	}
}

func TestMinAgeAt_NilClock(t *testing.T) {
	t.Parallel()

	rule := validator.MinAgeAt(16, nil)
	assert.True(t, rule.Evaluate("dob", "1970-01-01", nil).IsValid())
	assert.False(t, rule.Evaluate("dob", time.Now().Format(validator.DateLayout), nil).IsValid())
}
