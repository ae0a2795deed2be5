package errors

import (
	stderrs "errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes a corpus read can hit; anything else is a plain DB error
var pgCodes = map[string]ErrorCode{
	"42P01": ErrorCodeDataFormat, // undefined_table
	"42703": ErrorCodeDataFormat, // undefined_column
	"22P02": ErrorCodeDataFormat, // invalid_text_representation
	"42501": ErrorCodeForbidden,  // insufficient_privilege
	"57P01": ErrorCodeUnavailable,
	"57P03": ErrorCodeUnavailable,
	"57014": ErrorCodeUnavailable, // query_canceled, statement_timeout lands here
}

// PgError digs a *pgconn.PgError out of err's chain
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	ok := stderrs.As(err, &pgErr)
	return pgErr, ok
}

// DBErrorCode maps a Postgres error onto an ErrorCode; ok is false for non-pg errors
func DBErrorCode(err error) (code ErrorCode, ok bool) {
	pgErr, ok := PgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	if c, known := pgCodes[pgErr.Code]; known {
		return c, true
	}
	return ErrorCodeDB, true
}

// FromPostgresf wraps err with the mapped code, DB when err is not from Postgres
// A nil err stays nil
func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, fmt.Sprintf(format, a...))
}
