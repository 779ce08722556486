package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model interface{}, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// CoverageRecord DDL methods
func (cr CoverageRecord) TableDDL() string {
	return generateDDL(cr, "coverage_records")
}

func (cr CoverageRecord) IndexDDL() []string {
	return []string{
		"CREATE INDEX idx_coverage_total_sources ON coverage_records(total_sources);",
		"CREATE INDEX idx_coverage_quality_score ON coverage_records(quality_score);",
	}
}

func (cr CoverageRecord) TableName() string {
	return "coverage_records"
}

// DiscrepancyRecord DDL methods
func (dr DiscrepancyRecord) TableDDL() string {
	return generateDDL(dr, "discrepancies")
}

func (dr DiscrepancyRecord) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX idx_discrepancies_game_field ON discrepancies(game_id, field_name);",
		"CREATE INDEX idx_discrepancies_severity ON discrepancies(severity);",
	}
}

func (dr DiscrepancyRecord) TableName() string {
	return "discrepancies"
}

// QualityScoreRecord DDL methods
func (qr QualityScoreRecord) TableDDL() string {
	return generateDDL(qr, "quality_scores")
}

func (qr QualityScoreRecord) IndexDDL() []string {
	return []string{
		"CREATE INDEX idx_quality_scores_score ON quality_scores(quality_score);",
		"CREATE INDEX idx_quality_scores_training ON quality_scores(training_eligible);",
	}
}

func (qr QualityScoreRecord) TableName() string {
	return "quality_scores"
}

// EntityMappingRow DDL methods
func (em EntityMappingRow) TableDDL() string {
	return generateDDL(em, "entity_mappings")
}

func (em EntityMappingRow) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX idx_entity_mappings_source_native ON entity_mappings(source_name, native_id);",
		"CREATE UNIQUE INDEX idx_entity_mappings_game_source ON entity_mappings(game_id, source_name);",
	}
}

func (em EntityMappingRow) TableName() string {
	return "entity_mappings"
}

// MergedGame DDL methods
func (mg MergedGame) TableDDL() string {
	return generateDDL(mg, "merged_games")
}

func (mg MergedGame) IndexDDL() []string {
	return []string{
		"CREATE INDEX idx_merged_games_season ON merged_games(season);",
		"CREATE INDEX idx_merged_games_game_date ON merged_games(game_date);",
	}
}

func (mg MergedGame) TableName() string {
	return "merged_games"
}
