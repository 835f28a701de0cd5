package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// ReportDialect selects between the two report-format generations.
	ReportDialect string

	// StageName identifies one phase of the PnR flow.
	StageName string

	// ReportKind identifies one report file family inside a stage's rpts dir.
	ReportKind string

	// TimingMode is a check mode section inside the timing summary report.
	TimingMode string

	// TimingValueKind is a row label inside a timing mode section.
	TimingValueKind string

	// GroupDisplay selects how timing path groups are printed.
	GroupDisplay string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// Sentinel cell values. MissingValue marks a report or field that was
// not found at all; NoViolation marks a DRC report that exists but has
// no matching violation row. The two are distinct on purpose.
const (
	MissingValue = "-"
	NoViolation  = "No Violation"
)

// TruncateMarker is appended to cells that were cut to the column width.
const TruncateMarker = ".."

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
	JSONOut    OutputMode = "json"
)

// Report dialects. DialectV2 is the current flow: seven VT rows with
// colon-delimited values, and stage readiness that checks log mtime
// ordering. DialectV1 is the legacy flow: six VT rows with
// whitespace-delimited values and existence-only readiness.
const (
	DialectV1 ReportDialect = "v1"
	DialectV2 ReportDialect = "v2" // default
)

// Timing summary modes and row kinds.
const (
	SetupMode TimingMode = "Setup mode"
	HoldMode  TimingMode = "Hold mode"

	WNSValue       TimingValueKind = "WNS"
	TNSValue       TimingValueKind = "TNS"
	ViolatingValue TimingValueKind = "Violating"
)

// Group display modes. Exactly one is active per invocation.
const (
	GroupDetailBegin GroupDisplay = "detail-begin" // default
	GroupDominated   GroupDisplay = "dominated"
	GroupBeginOnly   GroupDisplay = "begin-only"
	GroupEndOnly     GroupDisplay = "end-only"
)

// DefaultPatternToken replaces digit runs delimited by underscores when
// pattern normalization is active.
const DefaultPatternToken = "_*_"

// All persistence backends supported.
const (
	NoneBackend       DatabaseBackend = "none" // default
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// StageAll selects every stage with readiness evidence.
const StageAll = "all"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	ParquetOut: {},
	JSONOut:    {},
}

// ValidDialects lists all valid report dialects.
var ValidDialects = map[ReportDialect]struct{}{
	DialectV1: {},
	DialectV2: {},
}

// ValidDatabaseBackends lists all valid persistence backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	NoneBackend:       {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// TimingModes in report order.
var TimingModes = []TimingMode{SetupMode, HoldMode}

// TimingValueKinds in report order.
var TimingValueKinds = []TimingValueKind{WNSValue, TNSValue, ViolatingValue}
