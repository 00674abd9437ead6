package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskboard/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	genericErr := errors.New("some database error")

	tests := []struct {
		name          string
		err           error
		expectedError error
		expectedMsg   string
	}{
		{
			name: "nil_error",
			err:  nil,
		},
		{
			name: "unique_violation",
			err: &pgconn.PgError{
				Code:           uniqueViolationCode,
				ConstraintName: "tasks_pkey",
			},
			expectedError: store.ErrInvalidEntity,
			expectedMsg:   "duplicate id (tasks_pkey)",
		},
		{
			name: "not_null_violation",
			err: &pgconn.PgError{
				Code:       notNullViolationCode,
				ColumnName: "text",
			},
			expectedError: store.ErrInvalidEntity,
			expectedMsg:   "not null violation (text)",
		},
		{
			name:          "undefined_table",
			err:           &pgconn.PgError{Code: undefinedTableCode},
			expectedError: store.ErrStoreUnavailable,
			expectedMsg:   "schema missing",
		},
		{
			name:          "wrapped_pg_error",
			err:           fmt.Errorf("exec: %w", &pgconn.PgError{Code: uniqueViolationCode}),
			expectedError: store.ErrInvalidEntity,
		},
		{
			name:          "generic_error",
			err:           genericErr,
			expectedError: genericErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MapError(tt.err)

			if tt.err == nil {
				assert.NoError(t, result)
				return
			}

			assert.True(t, errors.Is(result, tt.expectedError), "expected %v, got %v", tt.expectedError, result)
			if tt.expectedMsg != "" {
				assert.Contains(t, result.Error(), tt.expectedMsg)
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: uniqueViolationCode})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: notNullViolationCode}))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
}
