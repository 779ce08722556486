package iodb

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/hoopsync/hsdb/pkg/errcode"
)

// ConnectionError creates an error for a failed PostgreSQL
// connection.
func ConnectionError(host string, port int, database, user string, err error) error {
	msg := "Cannot connect to PostgreSQL at <em>%s:%d/%s</em> as '%s'"
	vars := []any{host, port, database, user}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("connect %s:%d/%s: %w",
			host, port, database, err),
	}
}

// NotConnectedError creates an error for operations attempted before
// Connect.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected",
		Err:  errors.New("iodb: pool is nil"),
	}
}

// TableCheckError creates an error for a failed table-existence
// query.
func TableCheckError(what string, err error) error {
	msg := "Cannot check database state for <em>%s</em>"
	vars := []any{what}

	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("table check %s: %w", what, err),
	}
}

// QueryTablesError creates an error for a failed table listing.
func QueryTablesError(err error) error {
	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  "Cannot list database tables",
		Err:  fmt.Errorf("query tables: %w", err),
	}
}

// ScanTableError creates an error for a failed table-name scan.
func ScanTableError(err error) error {
	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  "Cannot read database table names",
		Err:  fmt.Errorf("scan table name: %w", err),
	}
}

// DropTableError creates an error for a failed DROP TABLE.
func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("drop table %s: %w", table, err),
	}
}

// UpsertError creates an error for a failed batched upsert.
func UpsertError(table string, err error) error {
	msg := "Cannot write to table <em>%s</em>"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.DBUpsertError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("upsert %s: %w", table, err),
	}
}

// ScanError creates an error for a failed row scan.
func ScanError(table string, err error) error {
	msg := "Cannot read rows from table <em>%s</em>"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.DBScanError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("scan %s: %w", table, err),
	}
}

// RetryExhaustedError creates an error for a store operation that
// failed on every attempt.
func RetryExhaustedError(attempts int, err error) error {
	msg := "Store operation failed after <em>%d</em> attempt(s)"
	vars := []any{attempts}

	return &gn.Error{
		Code: errcode.DBRetryExhaustedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("retry exhausted after %d attempts: %w", attempts, err),
	}
}
