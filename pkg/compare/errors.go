package compare

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/hoopsync/hsdb/pkg/errcode"
)

// BadIntError creates an error for a value that should be an integer
// but is not. Scoped to one field of one record.
func BadIntError(field, raw string, err error) error {
	msg := "Field <em>%s</em> has non-integer value '%s'"
	vars := []any{field, raw}

	return &gn.Error{
		Code: errcode.SourceDataShapeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("field %s: bad integer %q: %w", field, raw, err),
	}
}

// BadDateError creates an error for an unparseable game date.
// Scoped to one field of one record.
func BadDateError(raw string, err error) error {
	msg := "Field <em>game_date</em> has unparseable value '%s'"
	vars := []any{raw}

	return &gn.Error{
		Code: errcode.SourceDataShapeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("field game_date: bad date %q: %w", raw, err),
	}
}
