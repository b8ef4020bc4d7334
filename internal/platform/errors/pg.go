package errors

// Postgres helpers that map pgx errors onto ErrorCode

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the services branch on
const (
	pgErrUniqueViolation           = "23505"
	pgErrForeignKeyViolation       = "23503"
	pgErrNotNullViolation          = "23502"
	pgErrCheckViolation            = "23514"
	pgErrStringDataRightTruncation = "22001"
	pgErrInvalidTextRepresentation = "22P02"
	pgErrInvalidDatetimeFormat     = "22007"
	pgErrNumericOutOfRange         = "22003"
	pgErrReadOnlySQLTransaction    = "25006"
	pgErrCannotConnectNow          = "57P03"
)

// ExtractPgError returns the *pgconn.PgError anywhere in the chain
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether err is a Postgres error with the given SQLSTATE
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// IsDuplicateKey reports a unique constraint violation
func IsDuplicateKey(err error) bool { return IsSQLState(err, pgErrUniqueViolation) }

// IsForeignKeyViolation reports a foreign key constraint violation
func IsForeignKeyViolation(err error) bool { return IsSQLState(err, pgErrForeignKeyViolation) }

// Constraint returns the violated constraint name, if any
func Constraint(err error) string {
	if pgErr, ok := ExtractPgError(err); ok {
		return pgErr.ConstraintName
	}
	return ""
}

// DBErrorCode maps a Postgres error to an ErrorCode
// ok is false when err carries no PgError
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch pgErr.Code {
	case pgErrUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case pgErrForeignKeyViolation:
		return ErrorCodeConflict, true
	case pgErrNotNullViolation, pgErrCheckViolation:
		return ErrorCodeValidation, true
	case pgErrStringDataRightTruncation, pgErrInvalidTextRepresentation,
		pgErrInvalidDatetimeFormat, pgErrNumericOutOfRange:
		return ErrorCodeInvalidArgument, true
	case pgErrReadOnlySQLTransaction, pgErrCannotConnectNow:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err with the mapped code and msg; nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return AttachFieldFromPg(Wrap(err, code, msg))
}

// AttachFieldFromPg names the offending column when Postgres reports one
// falls back to the middle token of constraints like users_email_key
func AttachFieldFromPg(err error) error {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return err
	}
	if col := strings.TrimSpace(pgErr.ColumnName); col != "" {
		return WithField(err, col)
	}
	c := strings.TrimSpace(pgErr.ConstraintName)
	for _, suf := range []string{"_key", "_fkey", "_pkey", "_check"} {
		if strings.HasSuffix(c, suf) {
			c = strings.TrimSuffix(c, suf)
			if i := strings.Index(c, "_"); i >= 0 && i+1 < len(c) {
				return WithField(err, c[i+1:])
			}
			break
		}
	}
	return err
}
