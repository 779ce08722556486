package ioexport

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/hoopsync/hsdb/pkg/errcode"
)

// NotConnectedError creates an error for an export attempted before
// the operator connected.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected",
		Err:  errors.New("ioexport: store is nil"),
	}
}

// EmptyDatasetError creates an error for an export with nothing to
// write.
func EmptyDatasetError() error {
	return &gn.Error{
		Code: errcode.ExportEmptyDatasetError,
		Msg:  "No reconciled games to export; run <em>hsdb reconcile</em> first",
		Err:  errors.New("ioexport: empty dataset"),
	}
}

// EncodeError creates an error for a failed snapshot encode or
// decode.
func EncodeError(err error) error {
	return &gn.Error{
		Code: errcode.ExportEncodeError,
		Msg:  "Cannot serialize the export snapshot",
		Err:  fmt.Errorf("snapshot encode: %w", err),
	}
}

// WriteError creates an error for a failed export file write.
func WriteError(path string, err error) error {
	msg := "Cannot write export file '%s'"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("write %s: %w", path, err),
	}
}

// ReadError creates an error for a failed snapshot read.
func ReadError(path string, err error) error {
	msg := "Cannot read export file '%s'"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("read %s: %w", path, err),
	}
}
