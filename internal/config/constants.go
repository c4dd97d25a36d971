package config

const SourceFileExt = ".gl"

// IsTestMode indicates if the program is running in test mode.
// Set by tests that need deterministic output (e.g. generated ids).
var IsTestMode = false

// Built-in host function names
const (
	LogFuncName  = "log"
	UUIDFuncName = "uuid"
)

// Defaults applied when no gl.yaml is found or a key is omitted.
const (
	DefaultMaxDepth       = 10000
	DefaultParserMaxDepth = 1000
	DefaultLogPrefix      = "[LOG]"
	DefaultHistoryFile    = ".gl_history"
	DefaultColor          = ColorAuto

	// MaxArrayLength bounds how far an index write may grow an array.
	MaxArrayLength = 1 << 24

	// IndentWidth is the number of spaces per nesting level in formatted source.
	IndentWidth = 4
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ConfigFileNames are searched, in order, in each directory by FindConfig.
var ConfigFileNames = []string{"gl.yaml", "gl.yml"}
