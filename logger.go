package linelog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golift.io/linelog/lineshift"
	"golift.io/linelog/timefmt"
)

// Logger is what you get in return for providing a Config. Use this to write entries.
// You should obtain a Logger by calling New or NewMust. A zero Logger reports
// ErrNotInitialized on every write until Configure is called.
// All methods are safe for concurrent use, and every method tolerates a nil Logger.
type Logger struct {
	mu      sync.Mutex      // held for every append, rotation, read and reconfigure.
	file    *sync.Mutex     // process-wide lock for path.
	config  Config          // copied from the caller, defaults applied.
	path    string          // the log file; empty until configured.
	layout  *timefmt.Layout // compiled config.TimePattern.
	zone    *time.Location  // UTC or Local.
	lastErr error           // most recent failure.
	stats   struct {
		appended atomic.Uint64
		dropped  atomic.Uint64
		failed   atomic.Uint64
	}
}

// Stats are counters for the lifetime of a Logger.
type Stats struct {
	Appended uint64 // Entries written.
	Dropped  uint64 // Lines removed by rotation.
	Failed   uint64 // Operations that reported an error.
}

// New takes in your configuration and a storage root and returns a Logger.
// The log file is created, with its parent folders, if it does not exist.
// The root is ignored when config.Location is Public.
func New(config Config, root string) (*Logger, error) {
	logger := &Logger{}

	if err := logger.Configure(config, root); err != nil {
		return nil, err
	}

	return logger, nil
}

// NewMust is like New, but an error creating the log file is only reported to
// the Sink: the Logger is returned anyway and each append tries again. An invalid
// configuration (unknown timezone or location, bad time pattern) panics.
func NewMust(config Config, root string) *Logger {
	logger := &Logger{}

	err := logger.Configure(config, root)
	if errors.Is(err, ErrInvalidConfig) {
		panic(err)
	}

	return logger
}

// Configure replaces the configuration and log file of an existing Logger.
// It waits for in-flight appends to finish first. An invalid configuration is
// returned and leaves the Logger unchanged. A file creation error is reported
// to the Sink and returned, but the new configuration stays active.
func (l *Logger) Configure(config Config, root string) error {
	if l == nil {
		return ErrNotInitialized
	}

	config = config.withDefaults()

	path, err := config.target(root)
	if errors.Is(err, ErrCreate) {
		config.Sink.LogError(err)
		return err
	} else if err != nil {
		return err
	}

	layout, err := config.layout()
	if err != nil {
		return err
	}

	zone, err := config.zone()
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.config = config
	l.path = path
	l.layout = layout
	l.zone = zone
	l.file = pathLock(path)

	l.file.Lock()
	defer l.file.Unlock()

	if err := l.create(); err != nil {
		return l.report(err)
	}

	return nil
}

// LogFile returns the path to the active log file. The boolean is false if the
// Logger was never configured.
func (l *Logger) LogFile() (string, bool) {
	if l == nil {
		return "", false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.path, l.path != ""
}

// LastError returns the most recent error reported to the Sink, or nil.
func (l *Logger) LastError() error {
	if l == nil {
		return ErrNotInitialized
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.lastErr
}

// Stats returns the Logger's counters.
func (l *Logger) Stats() Stats {
	if l == nil {
		return Stats{}
	}

	return Stats{
		Appended: l.stats.appended.Load(),
		Dropped:  l.stats.dropped.Load(),
		Failed:   l.stats.failed.Load(),
	}
}

// Info writes an entry tagged INFO, or with the provided tag.
func (l *Logger) Info(message string, tag ...string) {
	l.Log(LevelInfo, message, tag...)
}

// Verbose writes an entry tagged VERBOSE, or with the provided tag.
func (l *Logger) Verbose(message string, tag ...string) {
	l.Log(LevelVerbose, message, tag...)
}

// Debug writes an entry tagged DEBUG, or with the provided tag.
func (l *Logger) Debug(message string, tag ...string) {
	l.Log(LevelDebug, message, tag...)
}

// Warn writes an entry tagged WARN, or with the provided tag.
func (l *Logger) Warn(message string, tag ...string) {
	l.Log(LevelWarn, message, tag...)
}

// Log writes an entry tagged with the level name, or with the first provided tag.
// Errors are reported to the Sink and never returned.
func (l *Logger) Log(level Level, message string, tag ...string) {
	name := level.String()
	if len(tag) > 0 {
		name = tag[0]
	}

	_ = l.Append(name, message)
}

// Write appends p as one INFO entry, without its trailing newline. This allows
// passing a *Logger into log.SetOutput(). Call log.SetFlags(0) to avoid a
// second time stamp in each message.
func (l *Logger) Write(p []byte) (int, error) {
	if err := l.Append(LevelInfo.String(), strings.TrimRight(string(p), "\r\n")); err != nil {
		return 0, err
	}

	return len(p), nil
}

// Append formats and writes one entry, then removes the oldest lines if the
// file is over its limit. Each call reads the whole file to count lines, so the
// cost grows with the file size. Errors are reported to the Sink and returned.
func (l *Logger) Append(tag, message string) error {
	if l == nil {
		return ErrNotInitialized
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.path == "" {
		return l.report(ErrNotInitialized)
	}

	l.file.Lock()
	defer l.file.Unlock()

	entry := formatEntry(l.layout.Format(l.config.Now().In(l.zone)), tag, message)
	if err := l.append(entry); err != nil {
		return l.report(err)
	}

	return nil
}

// ReadLog calls fn with the log file open for reading. Appends and rotations
// wait until fn returns, so fn sees a consistent file. Do not write to the
// same Logger from fn.
func (l *Logger) ReadLog(fn func(r io.Reader) error) error {
	if l == nil {
		return ErrNotInitialized
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.path == "" {
		return ErrNotInitialized
	}

	l.file.Lock()
	defer l.file.Unlock()

	file, err := l.config.Filer.OpenFile(l.path, os.O_RDONLY, 0)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	} else if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer file.Close()

	return fn(file)
}

// create makes the log file, and its folder, if it does not exist.
func (l *Logger) create() error {
	if _, err := l.config.Filer.Stat(l.path); err == nil {
		return nil
	}

	if err := l.config.Filer.MkdirAll(filepath.Dir(l.path), l.config.DirMode); err != nil {
		return fmt.Errorf("%w: making directories for %s: %w", ErrCreate, l.path, err)
	}

	file, err := l.config.Filer.OpenFile(l.path, os.O_WRONLY|os.O_CREATE, l.config.FileMode)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCreate, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", ErrCreate, l.path, err)
	}

	return nil
}

// append writes an entry at the end of the file and rotates it if needed.
// The file is opened read-write, without O_APPEND, so the same handle can
// shift lines; the locks make the end-of-file seek safe.
func (l *Logger) append(entry []byte) (err error) {
	file, err := l.config.Filer.OpenFile(l.path, os.O_RDWR|os.O_CREATE, l.config.FileMode)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	} else if err != nil {
		return fmt.Errorf("%w: %w", ErrAppend, err)
	}

	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing %s: %w", ErrAppend, l.path, cerr)
		}
	}()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("%w: seeking %s: %w", ErrAppend, l.path, err)
	}

	if _, err := file.Write(entry); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrAppend, l.path, err)
	}

	l.stats.appended.Add(1)

	if !l.config.Rotation.Enabled {
		return nil
	}

	return l.rotate(file)
}

// rotate removes the oldest lines until the file holds at most MaxLines.
// After each append this is exactly one line, unless the file was already
// over the limit (say, MaxLines was lowered).
func (l *Logger) rotate(file lineshift.File) error {
	count, err := lineshift.CountLines(file)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRotate, l.path, err)
	}

	if uint64(count) <= uint64(l.config.Rotation.MaxLines) {
		return nil
	}

	extra := count - int(l.config.Rotation.MaxLines) //nolint:gosec // count is larger, so this fits.
	if _, err := lineshift.DropLines(file, extra); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRotate, l.path, err)
	}

	l.stats.dropped.Add(uint64(extra))

	return nil
}

// report records an error and sends it to the Sink. Must hold l.mu.
func (l *Logger) report(err error) error {
	l.lastErr = err
	l.stats.failed.Add(1)

	sink := l.config.Sink
	if sink == nil {
		sink = stdSink()
	}

	sink.LogError(err)

	return err
}

// Our interface must satify an io.Writer.
var _ io.Writer = (*Logger)(nil)
