package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestStrongPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"meets all requirements", "Abcdef1!", true},
		{"too short", "Abc1!", false},
		{"missing uppercase", "abcdef1!", false},
		{"missing lowercase", "ABCDEF1!", false},
		{"missing digit", "Abcdefg!", false},
		{"missing special", "Abcdefg1", false},
		{"space counts as special", "Abcdef1 ", true},
		{"empty", "", false},
	}

	rule := validator.StrongPassword()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := rule.Evaluate("password", tt.value, nil)
			assert.Equal(t, tt.valid, out.IsValid())
			if !tt.valid {
				assert.Equal(t, "Password must be 8+ chars with upper, lower, number, special", out.Message())
			}
		})
	}
}

func TestStrongPasswordWith(t *testing.T) {
	t.Parallel()

	rule := validator.StrongPasswordWith(validator.PasswordStrengthConfig{MinLength: 4, RequireDigits: true})
	assert.True(t, rule.Evaluate("pin", "abc1", nil).IsValid())
	assert.False(t, rule.Evaluate("pin", "abcd", nil).IsValid())
	assert.Equal(t, "Password must be 4+ chars with upper, lower, number, special", rule.Evaluate("pin", "a1", nil).Message())
}

func TestMatchesField(t *testing.T) {
	t.Parallel()

	rule := validator.MatchesField("password")
	assert.Equal(t, []string{"password"}, rule.Requires)

	tests := []struct {
		name     string
		value    string
		password string
		valid    bool
	}{
		{"equal", "Abcdef1!", "Abcdef1!", true},
		{"different", "Abcdef1?", "Abcdef1!", false},
		{"both empty", "", "", false},
		{"confirm empty", "", "Abcdef1!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := rule.Evaluate("confirmPassword", tt.value, validator.Values{"password": tt.password})
			assert.Equal(t, tt.valid, out.IsValid())
			if !tt.valid {
				assert.Equal(t, "Passwords do not match", out.Message())
			}
		})
	}

	t.Run("missing dependency value", func(t *testing.T) {
		t.Parallel()
		assert.False(t, rule.Evaluate("confirmPassword", "x", nil).IsValid())
	})
}
