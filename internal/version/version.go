package version

import "github.com/fatih/color"

const (
	major = "0"
	minor = "1"
	patch = "0"
	pre   = "dev"
)

// Build metadata, overridable at release time via -ldflags.
var (
	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Version is the semantic version of the CLI, with each segment colored.
var Version = color.New(color.FgYellow, color.Bold).Sprint(major) + "." +
	color.New(color.FgGreen, color.Bold).Sprint(minor) + "." +
	color.New(color.FgBlue, color.Bold).Sprint(patch) + "-" + pre
