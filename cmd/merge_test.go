package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetMergeCmd_Exists verifies getMergeCmd returns
// a valid command.
func TestGetMergeCmd_Exists(t *testing.T) {
	cmd := getMergeCmd()
	require.NotNil(t, cmd, "Merge command should exist")
	assert.Equal(t, "merge", cmd.Use,
		"Command name should be merge")
}

// TestGetMergeCmd_ShortDescription verifies short
// description.
func TestGetMergeCmd_ShortDescription(t *testing.T) {
	cmd := getMergeCmd()

	assert.NotEmpty(t, cmd.Short,
		"Short description should not be empty")
	assert.Contains(t, cmd.Short, "unified",
		"Short description should mention unified games")
}

// TestGetMergeCmd_LongDescription verifies long
// description.
func TestGetMergeCmd_LongDescription(t *testing.T) {
	cmd := getMergeCmd()

	assert.NotEmpty(t, cmd.Long,
		"Long description should not be empty")
	assert.Contains(t, cmd.Long, "identity key",
		"Long description should mention identity keys")
	assert.Contains(t, cmd.Long, "trust-based policies",
		"Long description should mention conflict resolution")
	assert.Contains(t, cmd.Long, "Native source identifiers",
		"Long description should note grouping exclusions")
}

// TestGetMergeCmd_SourcesFlag verifies --sources flag.
func TestGetMergeCmd_SourcesFlag(t *testing.T) {
	cmd := getMergeCmd()

	sourcesFlag := cmd.Flags().Lookup("sources")
	require.NotNil(t, sourcesFlag,
		"--sources flag should exist")
}

// TestGetMergeCmd_HasRunE verifies run function is set.
func TestGetMergeCmd_HasRunE(t *testing.T) {
	cmd := getMergeCmd()

	assert.NotNil(t, cmd.RunE,
		"RunE should be set")
}
