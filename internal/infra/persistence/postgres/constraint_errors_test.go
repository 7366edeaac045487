package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintViolations(t *testing.T) {
	unique := &pgconn.PgError{Code: pgUniqueViolation}
	foreignKey := &pgconn.PgError{Code: pgForeignKeyViolation}
	notNull := &pgconn.PgError{Code: pgNotNullViolation}

	tests := []struct {
		name       string
		err        error
		unique     bool
		foreignKey bool
		notNull    bool
	}{
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, unique: true},
		{name: "wrapped pg unique", err: fmt.Errorf("insert: %w", unique), unique: true},
		{name: "gorm foreign key", err: gorm.ErrForeignKeyViolated, foreignKey: true},
		{name: "pg foreign key", err: foreignKey, foreignKey: true},
		{name: "pg not null", err: notNull, notNull: true},
		{name: "unrelated", err: fmt.Errorf("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, isUniqueConstraintViolation(tt.err))
			assert.Equal(t, tt.foreignKey, isForeignKeyConstraintViolation(tt.err))
			assert.Equal(t, tt.notNull, isNotNullConstraintViolation(tt.err))
		})
	}
}
