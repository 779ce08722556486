package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Configuration errors (fatal, abort the run before any writes)
	ConfigThresholdError
	ConfigTrustRankingError
	ConfigSourcesError
	MappingArtifactMissingError
	MappingArtifactMalformedError
	MappingDuplicateNativeIDError
	MappingDuplicateSourceError
	IdentityKeyCollisionError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableCheckError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBUpsertError
	DBScanError
	DBRetryExhaustedError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError

	// Source adapter errors (recoverable, scoped to one source)
	SourceSnapshotMissingError
	SourceSnapshotReadError
	SourceUnavailableError
	SourceDataShapeError

	// Reconcile errors
	ReconcileCancelledError
	ReconcileAllSourcesFailedError

	// Merge errors
	MergeNoRecordsError

	// Export errors
	ExportEncodeError
	ExportEmptyDatasetError
)
