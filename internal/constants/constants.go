package constants

// Tool identity
const (
	ToolName = "larascan"

	// EnvVarPrefix prefixes environment overrides, e.g. LARASCAN_REPORT_FORMAT
	EnvVarPrefix = "LARASCAN"

	// DefaultConfigFile is the name written by `larascan init`
	DefaultConfigFile = "larascan.yaml"
)

// ConfigFileNames are searched in order in every candidate directory
var ConfigFileNames = []string{
	"larascan.yaml",
	"larascan.yml",
	".larascan.yaml",
	"larascan.json",
	"larascan.toml",
}

// Default project layout of a Laravel application
const (
	DefaultAppPath       = "app"
	DefaultViewsPath     = "resources/views"
	DefaultRootNamespace = "App"
)

// Exit codes of the check command
const (
	ExitPassed    = 0
	ExitViolation = 1
	ExitError     = 2
)
