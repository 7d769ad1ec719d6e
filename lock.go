package linelog

import (
	"path/filepath"
	"sync"
)

// pathLocks holds one mutex per log file path in this process, so separate
// Loggers writing the same file do not interleave or rotate under each other.
// Entries are never removed; there is one per distinct path.
var pathLocks sync.Map //nolint:gochecknoglobals

// pathLock returns the process-wide mutex for a log file path.
func pathLock(path string) *sync.Mutex {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	mu, _ := pathLocks.LoadOrStore(path, &sync.Mutex{})

	return mu.(*sync.Mutex) //nolint:forcetypeassert
}
