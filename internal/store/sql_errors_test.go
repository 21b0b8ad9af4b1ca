package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name      string
		err       error
		retryable bool
		unique    bool
	}{
		{"serialization failure", pgError(pgerrcode.SerializationFailure), true, false},
		{"deadlock", pgError(pgerrcode.DeadlockDetected), true, false},
		{"connection failure", pgError(pgerrcode.ConnectionFailure), true, false},
		{"cannot connect now", pgError(pgerrcode.CannotConnectNow), true, false},
		{"unique violation", pgError(pgerrcode.UniqueViolation), false, true},
		{"wrapped unique violation", fmt.Errorf("insert: %w", pgError(pgerrcode.UniqueViolation)), false, true},
		{"syntax error", pgError(pgerrcode.SyntaxError), false, false},
		{"plain error", errors.New("boom"), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, c.Classify(tt.err) == Retryable)
			assert.Equal(t, tt.unique, c.IsUniqueViolation(tt.err))
		})
	}
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	tests := []struct {
		name      string
		err       error
		retryable bool
		unique    bool
	}{
		{"busy", sqlite3.Error{Code: sqlite3.ErrBusy}, true, false},
		{"locked", sqlite3.Error{Code: sqlite3.ErrLocked}, true, false},
		{"unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, false, true},
		{"primary key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, false, true},
		{"foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, false, false},
		{"plain error", errors.New("boom"), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, c.Classify(tt.err) == Retryable)
			assert.Equal(t, tt.unique, c.IsUniqueViolation(tt.err))
		})
	}
}

func TestNewDB_EmptyDSN(t *testing.T) {
	_, err := NewDB(t.Context(), "", nil)
	assert.ErrorIs(t, err, ErrUnsupportedDSN)
}
