package schema

// StageDefinition ties a flow stage to the run-directory layout that
// carries its evidence: logs live at <run>/<Subdir>/logs/<LogStem>.log.gz
// and reports at <run>/<Subdir>/rpts.
type StageDefinition struct {
	Name    StageName
	Subdir  string
	LogStem string
}

// Stage names shared by both catalogs.
const (
	PlaceStage     StageName = "place"
	ClockStage     StageName = "clock"
	PostClockStage StageName = "post_clock"
	RouteStage     StageName = "route"
	RouteOptStage  StageName = "route_opt"
)

// StageCatalogV2 is the current flow chain, in causal order.
var StageCatalogV2 = []StageDefinition{
	{Name: PlaceStage, Subdir: "place", LogStem: "place"},
	{Name: ClockStage, Subdir: "cts", LogStem: "cts"},
	{Name: PostClockStage, Subdir: "postcts", LogStem: "postcts_opt"},
	{Name: RouteStage, Subdir: "route", LogStem: "route"},
	{Name: RouteOptStage, Subdir: "route_opt", LogStem: "route_opt"},
}

// StageCatalogV1 is the legacy chain; it has no post-clock stage.
var StageCatalogV1 = []StageDefinition{
	{Name: PlaceStage, Subdir: "place", LogStem: "place"},
	{Name: ClockStage, Subdir: "cts", LogStem: "cts"},
	{Name: RouteStage, Subdir: "route", LogStem: "route"},
	{Name: RouteOptStage, Subdir: "route_opt", LogStem: "route_opt"},
}

// StageCatalog returns the chain for a dialect.
func StageCatalog(dialect ReportDialect) []StageDefinition {
	if dialect == DialectV1 {
		return StageCatalogV1
	}
	return StageCatalogV2
}

// Report kinds located inside a stage's rpts directory.
const (
	VTReport          ReportKind = "vt"
	PowerPreOptReport ReportKind = "power_preopt"
	PowerGlobalReport ReportKind = "power_global"
	TimingSummary     ReportKind = "timing_summary"
	AltTimingSummary  ReportKind = "alt_timing_summary"
	DRCReport         ReportKind = "drc"
)

// RunLabelDepth maps a report kind to the number of path segments
// between the resolved report file and the run directory whose name
// labels the column. This is a structural assumption about the
// run-directory layout, kept visible so it can be tested.
var RunLabelDepth = map[ReportKind]int{
	VTReport:          3, // <run>/<stage>/rpts/<file>
	PowerPreOptReport: 3,
	PowerGlobalReport: 3,
	TimingSummary:     4, // <run>/<stage>/rpts/timing_0x/<file>
	AltTimingSummary:  3,
	DRCReport:         3,
}

// VT row labels per dialect. V2 reports carry an extra SVT8 row and
// colon-delimited values; V1 reports carry six rows with
// whitespace-delimited values. Instances, Flops and Gates rows share
// the extraction rule of the cell rows.
var (
	VTLabelsV2 = []string{"SVT", "SVT8", "LVT", "ULVT", "Instances", "Flops", "Gates"}
	VTLabelsV1 = []string{"SVT", "LVT", "ULVT", "Instances", "Flops", "Gates"}
)

// VTLabels returns the VT row labels for a dialect.
func VTLabels(dialect ReportDialect) []string {
	if dialect == DialectV1 {
		return VTLabelsV1
	}
	return VTLabelsV2
}
