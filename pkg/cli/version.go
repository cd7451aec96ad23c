package cli

import (
	"fmt"
	"runtime"
)

// Version information set by build flags
var (
	// Version is the semantic version of statusgen
	Version = "0.1.0"

	// GitCommit is the git commit hash (set by build flags)
	GitCommit = "unknown"

	// BuildDate is the build date (set by build flags)
	BuildDate = "unknown"
)

// VersionInfo contains version information
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
}

// GetVersionInfo returns the version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// VersionString renders the version block printed by --version.
func VersionString() string {
	info := GetVersionInfo()
	return fmt.Sprintf("statusgen version %s\nGit commit: %s\nBuild date: %s\nGo version: %s",
		info.Version, info.GitCommit, info.BuildDate, info.GoVersion)
}
