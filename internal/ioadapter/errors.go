package ioadapter

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/hoopsync/hsdb/pkg/errcode"
)

// SnapshotMissingError creates an error for an absent snapshot file.
func SnapshotMissingError(source, path string, err error) error {
	msg := "Snapshot for source <em>%s</em> not found at '%s'"
	vars := []any{source, path}

	return &gn.Error{
		Code: errcode.SourceSnapshotMissingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("source %s: snapshot %s: %w", source, path, err),
	}
}

// SnapshotOpenError creates an error for a snapshot that exists but
// cannot be opened as SQLite.
func SnapshotOpenError(source, path string, err error) error {
	msg := "Cannot open snapshot for source <em>%s</em> at '%s'"
	vars := []any{source, path}

	return &gn.Error{
		Code: errcode.SourceUnavailableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("source %s: open %s: %w", source, path, err),
	}
}

// SnapshotReadError creates an error for a failed snapshot query.
func SnapshotReadError(source string, err error) error {
	msg := "Cannot read snapshot of source <em>%s</em>"
	vars := []any{source}

	return &gn.Error{
		Code: errcode.SourceSnapshotReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("source %s: read: %w", source, err),
	}
}
