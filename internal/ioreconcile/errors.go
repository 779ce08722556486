package ioreconcile

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/hoopsync/hsdb/pkg/errcode"
)

// NotConnectedError creates an error for a reconcile attempted before
// the operator connected.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected",
		Err:  errors.New("ioreconcile: store is nil"),
	}
}

// AllSourcesFailedError creates an error for a run where no source
// snapshot could be opened.
func AllSourcesFailedError(failures int) error {
	msg := "All <em>%d</em> sources failed to open, nothing to reconcile"
	vars := []any{failures}

	return &gn.Error{
		Code: errcode.ReconcileAllSourcesFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("all %d sources failed", failures),
	}
}

// CancelledError creates an error for a run interrupted between
// games. Work persisted before the interruption stays in the store.
func CancelledError(err error) error {
	return &gn.Error{
		Code: errcode.ReconcileCancelledError,
		Msg:  "Reconciliation was cancelled; completed games are kept",
		Err:  fmt.Errorf("reconcile cancelled: %w", err),
	}
}
