package linelog

import (
	"fmt"
	"strings"
)

// Level names the kind of entry. Levels only pick the default tag;
// nothing is filtered.
type Level uint8

// These are the levels a Logger writes.
const (
	LevelInfo Level = iota
	LevelVerbose
	LevelDebug
	LevelWarn
)

// String returns the level name, which is also the default tag.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelVerbose:
		return "VERBOSE"
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	default:
		return fmt.Sprintf("LEVEL(%d)", uint8(l))
	}
}

// ParseLevel converts a level name, in any case, to a Level.
func ParseLevel(name string) (Level, error) {
	for _, level := range []Level{LevelInfo, LevelVerbose, LevelDebug, LevelWarn} {
		if strings.EqualFold(strings.TrimSpace(name), level.String()) {
			return level, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown level %q (use info, verbose, debug or warn)", ErrInvalidConfig, name)
}
