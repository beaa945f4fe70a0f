// Package misc keeps build time information.
package misc

// Set with -ldflags "-X cssedit/misc.version=... -X cssedit/misc.hash=..."
var (
	version = "dev"
	hash    = "unknown"
)

const appName = "cssedit"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return hash
}
