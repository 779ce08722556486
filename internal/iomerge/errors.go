package iomerge

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/hoopsync/hsdb/pkg/errcode"
)

// NotConnectedError creates an error for a merge attempted before the
// operator connected.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected",
		Err:  errors.New("iomerge: store is nil"),
	}
}

// NoRecordsError creates an error for a merge pass where the
// snapshots yielded no records at all.
func NoRecordsError() error {
	return &gn.Error{
		Code: errcode.MergeNoRecordsError,
		Msg:  "No records found in any source snapshot",
		Err:  errors.New("iomerge: zero records loaded"),
	}
}

// AllSourcesFailedError creates an error for a merge pass where every
// source failed to load.
func AllSourcesFailedError(failures int) error {
	msg := "All <em>%d</em> sources failed to load, nothing to merge"
	vars := []any{failures}

	return &gn.Error{
		Code: errcode.ReconcileAllSourcesFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("all %d sources failed", failures),
	}
}
