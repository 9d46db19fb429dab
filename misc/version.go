// Package misc keeps small helpers which do not belong anywhere else.
package misc

import (
	"runtime/debug"
)

const appName = "fdc"

// GetAppName returns program name used in logs, temporary paths and reports.
func GetAppName() string {
	return appName
}

// GetVersion returns module version recorded in build info, "devel" when
// building from a working tree.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "devel"
}

// GetGitHash returns VCS revision recorded in build info if any.
func GetGitHash() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
