package ioschema

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/hoopsync/hsdb/pkg/errcode"
)

// NotConnectedError creates an error for schema operations attempted
// before the operator connected.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected",
		Err:  errors.New("ioschema: pool is nil"),
	}
}

// GORMConnectionError creates an error for a failed GORM session over
// the pgx pool.
func GORMConnectionError(err error) error {
	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  "Cannot open ORM session over the database pool",
		Err:  fmt.Errorf("gorm open: %w", err),
	}
}

// CreateSchemaError creates an error for a failed schema creation.
func CreateSchemaError(err error) error {
	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  "Cannot create database schema",
		Err:  fmt.Errorf("schema create: %w", err),
	}
}

// MigrateSchemaError creates an error for a failed schema migration.
func MigrateSchemaError(err error) error {
	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  "Cannot migrate database schema",
		Err:  fmt.Errorf("schema migrate: %w", err),
	}
}
