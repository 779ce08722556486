package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetExportCmd_Exists verifies getExportCmd returns
// a valid command.
func TestGetExportCmd_Exists(t *testing.T) {
	cmd := getExportCmd()
	require.NotNil(t, cmd, "Export command should exist")
	assert.Equal(t, "export", cmd.Use,
		"Command name should be export")
}

// TestGetExportCmd_ShortDescription verifies short
// description.
func TestGetExportCmd_ShortDescription(t *testing.T) {
	cmd := getExportCmd()

	assert.NotEmpty(t, cmd.Short,
		"Short description should not be empty")
	assert.Contains(t, cmd.Short, "snapshot",
		"Short description should mention snapshot")
	assert.Contains(t, cmd.Short, "dataset",
		"Short description should mention dataset")
}

// TestGetExportCmd_LongDescription verifies long
// description.
func TestGetExportCmd_LongDescription(t *testing.T) {
	cmd := getExportCmd()

	assert.NotEmpty(t, cmd.Long,
		"Long description should not be empty")
	assert.Contains(t, cmd.Long, "JSON snapshot",
		"Long description should mention the snapshot file")
	assert.Contains(t, cmd.Long, "CSV dataset",
		"Long description should mention the dataset file")
	assert.Contains(t, cmd.Long, "four decimal",
		"Long description should mention weight rounding")
}

// TestGetExportCmd_OutputDirFlag verifies --output-dir flag.
func TestGetExportCmd_OutputDirFlag(t *testing.T) {
	cmd := getExportCmd()

	outFlag := cmd.Flags().Lookup("output-dir")
	require.NotNil(t, outFlag,
		"--output-dir flag should exist")

	assert.Equal(t, "o", outFlag.Shorthand,
		"Short form should be -o")
	assert.Equal(t, "", outFlag.DefValue,
		"Default should be empty (cache dir)")
}

// TestGetExportCmd_HasRunE verifies run function is set.
func TestGetExportCmd_HasRunE(t *testing.T) {
	cmd := getExportCmd()

	assert.NotNil(t, cmd.RunE,
		"RunE should be set")
}
