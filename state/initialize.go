package state

import (
	"time"
)

// newLocalEnv creates a new LocalEnv instance with default values, logger is
// set up later when configuration is known.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}
