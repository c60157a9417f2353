package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		expected   bool
	}{
		{
			name:       "matching constraint",
			err:        &pq.Error{Code: "23505", Constraint: "accounts_username_key"},
			constraint: "accounts_username_key",
			expected:   true,
		},
		{
			name:       "any constraint when empty",
			err:        &pq.Error{Code: "23505", Constraint: "favorites_account_film_key"},
			constraint: "",
			expected:   true,
		},
		{
			name:       "different constraint",
			err:        &pq.Error{Code: "23505", Constraint: "favorites_account_film_key"},
			constraint: "accounts_username_key",
			expected:   false,
		},
		{
			name:       "different error code",
			err:        &pq.Error{Code: "23503", Constraint: "accounts_username_key"},
			constraint: "accounts_username_key",
			expected:   false,
		},
		{
			name:       "not a pq error",
			err:        errors.New("unique violation"),
			constraint: "accounts_username_key",
			expected:   false,
		},
		{
			name:       "wrapped pq error",
			err:        fmt.Errorf("insert failed: %w", &pq.Error{Code: "23505", Constraint: "accounts_username_key"}),
			constraint: "accounts_username_key",
			expected:   true,
		},
		{
			name:       "nil error",
			err:        nil,
			constraint: "",
			expected:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsUniqueViolation(tt.err, tt.constraint))
		})
	}
}
