package schema_test

import (
	"strings"
	"testing"

	"github.com/hoopsync/hsdb/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func TestCoverageRecordTableDDL(t *testing.T) {
	cr := schema.CoverageRecord{}
	ddl := cr.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE coverage_records")
	assert.Contains(t, ddl, "game_id UUID PRIMARY KEY")
	assert.Contains(t, ddl, "sources_present JSONB")
	assert.Contains(t, ddl, "total_sources INT NOT NULL DEFAULT 0")
	assert.Contains(t, ddl, "primary_source VARCHAR(50)")
}

func TestDiscrepancyRecordTableDDL(t *testing.T) {
	dr := schema.DiscrepancyRecord{}
	ddl := dr.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE discrepancies")
	assert.Contains(t, ddl, "id UUID PRIMARY KEY")
	assert.Contains(t, ddl, "game_id UUID NOT NULL")
	assert.Contains(t, ddl, "field_name VARCHAR(50) NOT NULL")
	assert.Contains(t, ddl, "source_values JSONB")
	assert.Contains(t, ddl, "severity VARCHAR(10) NOT NULL")
	assert.Contains(t, ddl,
		"resolution_status VARCHAR(20) NOT NULL DEFAULT 'DETECTED'")
}

func TestDiscrepancyRecordIndexDDL(t *testing.T) {
	dr := schema.DiscrepancyRecord{}
	indexes := dr.IndexDDL()

	var uniqueGameField bool
	for _, idx := range indexes {
		if strings.Contains(idx, "UNIQUE") &&
			strings.Contains(idx, "(game_id, field_name)") {
			uniqueGameField = true
		}
	}
	assert.True(t, uniqueGameField,
		"one discrepancy row per (game, field)")
}

func TestQualityScoreRecordTableDDL(t *testing.T) {
	qr := schema.QualityScoreRecord{}
	ddl := qr.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE quality_scores")
	assert.Contains(t, ddl, "game_id UUID PRIMARY KEY")
	assert.Contains(t, ddl, "run_id UUID")
	assert.Contains(t, ddl, "quality_score INT NOT NULL")
	assert.Contains(t, ddl, "uncertainty VARCHAR(10) NOT NULL")
	assert.Contains(t, ddl, "training_eligible BOOLEAN NOT NULL DEFAULT TRUE")
	assert.Contains(t, ddl, "training_weight DOUBLE PRECISION")
}

func TestEntityMappingRowIndexDDL(t *testing.T) {
	em := schema.EntityMappingRow{}
	indexes := em.IndexDDL()

	joined := strings.Join(indexes, "\n")
	assert.Contains(t, joined, "(source_name, native_id)")
	assert.Contains(t, joined, "(game_id, source_name)")
}

func TestMergedGameTableDDL(t *testing.T) {
	mg := schema.MergedGame{}
	ddl := mg.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE merged_games")
	assert.Contains(t, ddl, "id UUID PRIMARY KEY")
	assert.Contains(t, ddl, "sources_merged JSONB")
	assert.Contains(t, ddl, "merge_timestamp TIMESTAMP WITHOUT TIME ZONE")
}

func TestTableNames(t *testing.T) {
	tests := []struct {
		model schema.DDLGenerator
		want  string
	}{
		{schema.CoverageRecord{}, "coverage_records"},
		{schema.DiscrepancyRecord{}, "discrepancies"},
		{schema.QualityScoreRecord{}, "quality_scores"},
		{schema.EntityMappingRow{}, "entity_mappings"},
		{schema.MergedGame{}, "merged_games"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.model.TableName())
	}
}

func TestAllModelsCoverEveryTable(t *testing.T) {
	assert.Len(t, schema.AllModels(), 5)
}
