package buildinfo

import "time"

// Injected via -ldflags when a release binary is built
var (
	BuildTime  string // when the binary was compiled
	CommitTime string // time of the last commit included in the build
	CommitHash string // short hash of that commit
)

// StartTime is recorded when the process starts
var StartTime = time.Now().UTC().Format(time.RFC3339)
