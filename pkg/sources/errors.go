package sources

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/hoopsync/hsdb/pkg/errcode"
)

// MalformedError creates an error for an unparseable sources.yaml.
func MalformedError(err error) error {
	msg := `Cannot parse sources.yaml

<em>How to fix:</em>
  1. Check the file is valid YAML
  2. Compare with the generated default in the config directory`

	return &gn.Error{
		Code: errcode.ConfigSourcesError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("cannot parse sources config: %w", err),
	}
}

// EmptyError creates an error for a sources.yaml with no sources.
func EmptyError() error {
	msg := "sources.yaml declares no sources"

	return &gn.Error{
		Code: errcode.ConfigSourcesError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("no sources configured"),
	}
}

// MissingNameError creates an error for a source without a name.
func MissingNameError(index int) error {
	msg := "Source at position %d has no <em>name</em>"
	vars := []any{index}

	return &gn.Error{
		Code: errcode.ConfigSourcesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("source %d: empty name", index),
	}
}

// DuplicateNameError creates an error for a repeated source name.
func DuplicateNameError(name string) error {
	msg := "Source <em>%s</em> is declared more than once"
	vars := []any{name}

	return &gn.Error{
		Code: errcode.ConfigSourcesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("duplicate source name: %s", name),
	}
}

// MissingSnapshotError creates an error for a source without a
// snapshot path.
func MissingSnapshotError(name string) error {
	msg := "Source <em>%s</em> has no <em>snapshot</em> path"
	vars := []any{name}

	return &gn.Error{
		Code: errcode.ConfigSourcesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("source %s: empty snapshot path", name),
	}
}

// UnknownSourcesError creates an error for requested source names that
// do not exist in sources.yaml.
func UnknownSourcesError(names []string) error {
	msg := `Unknown sources requested: %v

<em>How to fix:</em>
  1. Check available sources in sources.yaml
  2. Verify the --sources flag spelling`

	vars := []any{names}

	return &gn.Error{
		Code: errcode.ConfigSourcesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown sources: %v", names),
	}
}
