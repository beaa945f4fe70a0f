package config

import "os"

// colorAllowed honors https://no-color.org convention.
func colorAllowed() bool {
	_, set := os.LookupEnv("NO_COLOR")
	return !set
}
