package iosources

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/hoopsync/hsdb/pkg/errcode"
)

// SourcesConfigError creates an error for an unreadable sources.yaml.
func SourcesConfigError(path string, err error) error {
	msg := "Cannot read sources configuration at '%s'"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.ConfigSourcesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("read sources config %s: %w", path, err),
	}
}
