// Package settings provides build metadata, runtime configuration, and
// context helpers used by the kvdig CLI.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "kvdig"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds configuration settings for a single execution of the CLI.
type Run struct {
	// MinLogLevel is a zapcore level: -1 debug, 0 info.
	MinLogLevel int8
	// Output names the result format (auto, yaml, json, toml, raw, table, tree).
	Output string
	// RawKeys disables literal parsing of key arguments.
	RawKeys bool
	IsQuiet bool
	NoColor bool
}

// NewCliParams returns the default CLI settings.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Output:      "auto",
		RawKeys:     false,
		IsQuiet:     false,
		NoColor:     false,
	}
}
