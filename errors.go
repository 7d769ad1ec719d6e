package linelog

import "errors"

// Custom errors returned by this package. Errors from a Logger wrap one of
// these, so use errors.Is to find out what kind of failure occurred.
var (
	ErrCreate            = errors.New("creating log file")
	ErrNotFound          = errors.New("log file location not found")
	ErrAppend            = errors.New("appending to log file")
	ErrRotate            = errors.New("rotating log file")
	ErrNotInitialized    = errors.New("logger not initialized")
	ErrInvalidConfig     = errors.New("invalid logger configuration")
	ErrUnsupportedFormat = errors.New("unsupported config file format")
)
