package logging

// Config defines logging behavior, overridable via env vars at NewLogger
// call time. There is no generic settings-extension mechanism here (unlike
// the teacher's pluggable grove.yml): sorcery-desktop's settings schema is
// small and fixed, so logging config is env-var only.
type Config struct {
	// Level is the minimum log level to output (e.g. "debug", "info", "warn", "error").
	Level string

	// ReportCaller, if true, includes file/line/function in log output.
	ReportCaller bool

	// Format controls the text/json presentation.
	Format FormatConfig
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset can be "default" (rich text), "simple" (minimal text), or "json".
	Preset string
	// DisableTimestamp disables the timestamp from the "default"/"simple" formats.
	DisableTimestamp bool
	// DisableComponent disables the component name from the "default"/"simple" formats.
	DisableComponent bool
	// StructuredToStderr controls when structured logs are sent to stderr:
	// "auto" (default), "always", or "never".
	StructuredToStderr string
}
