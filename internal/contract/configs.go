package contract

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/edakit/pnrlens/schema"
)

// Default values for configuration.
const (
	DefaultColumnWidth = 20
	MaxColumnWidth     = 120
)

// Config holds the validated runtime configuration.
type Config struct {
	// Compare inputs
	RunDirs []string
	Stage   string // "all" or one catalog stage name
	Dialect schema.ReportDialect

	// Design-name resolution
	WardRoot string
	Block    string
	Design   string // resolved (or overridden) design name; may be empty

	// Rendering
	ColumnWidth int // 0 = derive from terminal width
	Output      schema.OutputMode
	OutputFile  string
	CSVFile     string // optional CSV copy alongside console tables
	UseColors   bool

	// Side effects
	CompressAltTiming bool

	// Grouping
	GroupReportPath string
	GroupDisplay    schema.GroupDisplay
	Pattern         bool
	PatternToken    string

	// Persistence
	CacheBackend     schema.DatabaseBackend
	CacheDBConnect   string // Please use env var as this is plaintext
	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env,
// config file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// Set manually from positional args, so no tag.
	RunDirArgs []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	WardRoot         string `mapstructure:"ward-root"`
	Block            string `mapstructure:"block"`
	Design           string `mapstructure:"design"`
	Dialect          string `mapstructure:"dialect"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from compareCmd.Flags() ---
	Stage             string `mapstructure:"stage"`
	CSVFile           string `mapstructure:"csv-file"`
	CompressAltTiming bool   `mapstructure:"compress-alt-timing"`

	// --- Fields from groupsCmd.Flags() ---
	Dominated    bool   `mapstructure:"dominated"`
	BeginOnly    bool   `mapstructure:"begin-only"`
	EndOnly      bool   `mapstructure:"end-only"`
	NoPattern    bool   `mapstructure:"no-pattern"`
	PatternToken string `mapstructure:"pattern-token"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.RunDirs != nil {
		clone.RunDirs = make([]string, len(c.RunDirs))
		copy(clone.RunDirs, c.RunDirs)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw
// inputs and populates the final Config struct. Run directories and
// the stage name are validated here, before any stage resolution.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateGroupFlags(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := validateOutputFiles(cfg); err != nil {
		return err
	}
	return validateRunDirs(cfg, input)
}

// validateSimpleInputs processes the non-compound fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.CSVFile = input.CSVFile
	cfg.WardRoot = input.WardRoot
	cfg.Block = input.Block
	cfg.Design = input.Design
	cfg.CompressAltTiming = input.CompressAltTiming

	cfg.Stage = strings.TrimSpace(input.Stage)
	if cfg.Stage == "" {
		cfg.Stage = schema.StageAll
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Width < 0 || input.Width > MaxColumnWidth {
		return fmt.Errorf("width must be between 0 and %d (received %d)", MaxColumnWidth, input.Width)
	}
	cfg.ColumnWidth = input.Width

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	cfg.Dialect = schema.ReportDialect(strings.ToLower(input.Dialect))
	if _, ok := schema.ValidDialects[cfg.Dialect]; !ok {
		return fmt.Errorf("invalid dialect '%s'. must be v1 or v2", input.Dialect)
	}

	// An explicit stage must exist in the selected catalog.
	if cfg.Stage != schema.StageAll {
		found := false
		for _, st := range schema.StageCatalog(cfg.Dialect) {
			if string(st.Name) == cfg.Stage {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("invalid stage '%s' for dialect %s. must be 'all' or one of the catalog stages", cfg.Stage, cfg.Dialect)
		}
	}

	return nil
}

// validateGroupFlags resolves the grouping display mode and rejects
// conflicting flag combinations.
func validateGroupFlags(cfg *Config, input *ConfigRawInput) error {
	picked := 0
	cfg.GroupDisplay = schema.GroupDetailBegin
	if input.Dominated {
		cfg.GroupDisplay = schema.GroupDominated
		picked++
	}
	if input.BeginOnly {
		cfg.GroupDisplay = schema.GroupBeginOnly
		picked++
	}
	if input.EndOnly {
		cfg.GroupDisplay = schema.GroupEndOnly
		picked++
	}
	if picked > 1 {
		return fmt.Errorf("--dominated, --begin-only and --end-only are mutually exclusive")
	}

	cfg.Pattern = !input.NoPattern
	cfg.PatternToken = input.PatternToken
	if cfg.PatternToken == "" {
		cfg.PatternToken = schema.DefaultPatternToken
	}
	if input.NoPattern && input.PatternToken != "" && input.PatternToken != schema.DefaultPatternToken {
		return fmt.Errorf("--pattern-token conflicts with --no-pattern")
	}
	if err := ValidatePatternToken(cfg.PatternToken); err != nil {
		return err
	}

	return nil
}

var patternTokenDigit = regexp.MustCompile(`\d`)

// ValidatePatternToken rejects wildcard tokens containing digits. A
// digit inside the token can form a fresh underscore-delimited index
// run after substitution, so normalization would never reach a
// fixpoint.
func ValidatePatternToken(token string) error {
	if patternTokenDigit.MatchString(token) {
		return fmt.Errorf("pattern token %q must not contain digits", token)
	}
	return nil
}

// validateOutputFiles opens each configured output destination once so
// an unwritable path fails before any extraction starts.
func validateOutputFiles(cfg *Config) error {
	for _, path := range []string{cfg.OutputFile, cfg.CSVFile} {
		if path == "" {
			continue
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open output file %s: %w", path, err)
		}
		_ = f.Close()
	}
	return nil
}

// validateBackendConfigs validates cache and history backend settings.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be none, sqlite, mysql, postgresql", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be none, sqlite, mysql, postgresql", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		historyPath := cfg.HistoryDBConnect
		if historyPath == "" {
			historyPath = GetHistoryDBFilePath()
		}
		if cachePath == historyPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cachePath)
		}
	}

	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateRunDirs checks that every supplied run directory exists and
// is a directory. A missing run directory is fatal before any stage
// resolution starts; a missing report inside a valid run is not.
func validateRunDirs(cfg *Config, input *ConfigRawInput) error {
	cfg.RunDirs = nil
	for _, dir := range input.RunDirArgs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("run directory %s does not exist", dir)
		}
		if !info.IsDir() {
			return fmt.Errorf("run directory %s is not a directory", dir)
		}
		cfg.RunDirs = append(cfg.RunDirs, dir)
	}
	return nil
}
