package identity

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/hoopsync/hsdb/pkg/errcode"
)

// NilRecordError creates an error for a nil record handed to key
// derivation.
func NilRecordError() error {
	return &gn.Error{
		Code: errcode.SourceDataShapeError,
		Msg:  "Cannot derive identity key from a missing record",
		Err:  errors.New("identity: nil record"),
	}
}

// MissingTeamError creates an error for a record without both team
// names.
func MissingTeamError(source, nativeID string) error {
	msg := "Record <em>%s</em> from <em>%s</em> is missing a team name"
	vars := []any{nativeID, source}

	return &gn.Error{
		Code: errcode.SourceDataShapeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("identity: record %s/%s: missing team",
			source, nativeID),
	}
}

// MissingDateError creates an error for a record without a game date.
func MissingDateError(source, nativeID string) error {
	msg := "Record <em>%s</em> from <em>%s</em> is missing a game date"
	vars := []any{nativeID, source}

	return &gn.Error{
		Code: errcode.SourceDataShapeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("identity: record %s/%s: missing date",
			source, nativeID),
	}
}

// CollisionError creates an error for two records that share a
// composite key but disagree on team names, which means the
// normalization collapsed genuinely different games.
func CollisionError(key string, a, b string) error {
	msg := "Identity key <em>%s</em> collides between '%s' and '%s'"
	vars := []any{key, a, b}

	return &gn.Error{
		Code: errcode.IdentityKeyCollisionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("identity: key %s collision: %s vs %s",
			key, a, b),
	}
}
