package mapping

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/hoopsync/hsdb/pkg/errcode"
)

// NotFoundError creates an error for a missing mapping artifact.
func NotFoundError(path string, err error) error {
	msg := `Entity mapping artifact not found

<em>Expected location:</em> %s

<em>How to fix:</em>
  1. Generate the mapping with the upstream matching job
  2. Place it at the expected location, or
  3. Point at it with <em>--mapping</em>`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.MappingArtifactMissingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("mapping artifact not found at %s: %w", path, err),
	}
}

// MalformedError creates an error for an unparseable artifact.
func MalformedError(err error) error {
	msg := `Cannot parse the entity mapping artifact

<em>How to fix:</em>
  1. Check the file is valid YAML
  2. Regenerate the artifact with the upstream matching job`

	return &gn.Error{
		Code: errcode.MappingArtifactMalformedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("cannot parse mapping artifact: %w", err),
	}
}

// EmptyError creates an error for an artifact without games.
func EmptyError() error {
	msg := "Entity mapping artifact declares no games"

	return &gn.Error{
		Code: errcode.MappingArtifactMalformedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("mapping artifact is empty"),
	}
}

// MissingIDError creates an error for a game without a canonical id.
func MissingIDError(index int) error {
	msg := "Game at position %d has no canonical <em>id</em>"
	vars := []any{index}

	return &gn.Error{
		Code: errcode.MappingArtifactMalformedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("game %d: empty canonical id", index),
	}
}

// NoSourcesError creates an error for a game with no source bindings.
func NoSourcesError(gameID string) error {
	msg := "Game <em>%s</em> has no source bindings"
	vars := []any{gameID}

	return &gn.Error{
		Code: errcode.MappingArtifactMalformedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("game %s: no sources", gameID),
	}
}

// DuplicateGameError creates an error for a canonical id declared
// twice.
func DuplicateGameError(gameID string) error {
	msg := "Canonical game <em>%s</em> is declared more than once"
	vars := []any{gameID}

	return &gn.Error{
		Code: errcode.MappingDuplicateSourceError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("duplicate canonical id: %s", gameID),
	}
}

// EmptyNativeIDError creates an error for an empty native id binding.
func EmptyNativeIDError(gameID, source string) error {
	msg := "Game <em>%s</em> binds source <em>%s</em> to an empty native id"
	vars := []any{gameID, source}

	return &gn.Error{
		Code: errcode.MappingArtifactMalformedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("game %s: empty native id for %s", gameID, source),
	}
}

// DuplicateNativeIDError creates an error for a native id mapped to
// two different canonical ids within one source.
func DuplicateNativeIDError(source, nativeID, firstID, secondID string) error {
	msg := `Native id collision within source <em>%s</em>

Native id <em>%s</em> maps to both <em>%s</em> and <em>%s</em>.

<em>How to fix:</em>
  1. Regenerate the mapping artifact
  2. Inspect the upstream matching job for this source`

	vars := []any{source, nativeID, firstID, secondID}

	return &gn.Error{
		Code: errcode.MappingDuplicateNativeIDError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"source %s: native id %s maps to %s and %s",
			source, nativeID, firstID, secondID),
	}
}
