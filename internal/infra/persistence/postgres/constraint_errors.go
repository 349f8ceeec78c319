package postgres

import (
	"strings"

	"authd/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes.
const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
)

// uniqueConstraintColumns maps unique constraint names to the column they guard.
var uniqueConstraintColumns = map[string]string{
	"accounts_email_key": "email",
}

// uniqueViolation reports whether err is a unique constraint violation and,
// if the driver says which, the offending column.
func uniqueViolation(err error) (column string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return "", false
		}

		return violatedColumn(pgErr), true
	}

	// With TranslateError enabled GORM replaces the driver error and the
	// constraint name is lost.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}

	return "", false
}

func violatedColumn(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if column, ok := uniqueConstraintColumns[pgErr.ConstraintName]; ok {
		return column
	}

	// Key (email)=(a@x.com) already exists.
	if detail, found := strings.CutPrefix(pgErr.Detail, "Key ("); found {
		if column, _, found := strings.Cut(detail, ")"); found && !strings.Contains(column, ",") {
			return column
		}
	}

	return ""
}

func isNotNullConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgNotNullViolation
	}

	return false
}
