package linelog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golift.io/linelog/filer"
	"golift.io/linelog/timefmt"
)

// These are the default directory and log file POSIX modes.
const (
	FileMode os.FileMode = 0o600
	DirMode  os.FileMode = 0o750
)

// Defaults used for any Config member left empty.
const (
	DefaultFileName    = "Application"
	DefaultTimePattern = "dd-MMM-yyyy HH:mm:ss zzz"
	LogExt             = ".log"
	// DownloadsDir is joined to the home directory when Location is Public
	// and PublicDir is empty.
	DownloadsDir = "Downloads"
)

// Timezone selects the zone time stamps are rendered in.
type Timezone string

// Time stamps are rendered in UTC by default.
const (
	UTC   Timezone = "utc"
	Local Timezone = "local"
)

// Location selects which storage root the log file lives under.
type Location string

// Private stores the log under the root passed to New. Public stores it in a
// shared, user-visible directory. The caller is responsible for having write
// access there; the logger only reports the OS error if it does not.
const (
	Private Location = "private"
	Public  Location = "public"
)

// Rotation bounds the log file to MaxLines lines. When Enabled is false the
// file grows forever. MaxLines of zero with Enabled true keeps the file empty.
type Rotation struct {
	Enabled  bool `koanf:"enabled"`
	MaxLines uint `koanf:"max_lines"`
}

// Config is the data needed to create a Logger. The zero value is usable:
// empty members are replaced with the package defaults. A Logger keeps its own
// copy, so changing a Config after passing it in has no effect.
type Config struct {
	FileName    string      `koanf:"file_name"`    // Base name; ".log" is appended.
	Rotation    Rotation    `koanf:"rotation"`     // Line limit.
	Timezone    Timezone    `koanf:"timezone"`     // utc or local.
	TimePattern string      `koanf:"time_pattern"` // See package timefmt.
	Location    Location    `koanf:"location"`     // private or public.
	PublicDir   string      `koanf:"public_dir"`   // Root for Public, default ~/Downloads.
	FileMode    os.FileMode `koanf:"file_mode"`    // POSIX mode for a new file.
	DirMode     os.FileMode `koanf:"dir_mode"`     // POSIX mode for new folders.
	// Mockable interfaces. Setting these is very optional.
	Now   func() time.Time `koanf:"-"` // Clock for time stamps, default time.Now.
	Sink  Sink             `koanf:"-"` // Receives swallowed errors, default log.Printf.
	Filer filer.Filer      `koanf:"-"` // File system procedures.
}

// DefaultConfig returns a Config with every member set to its default.
func DefaultConfig() Config {
	return Config{
		FileName:    DefaultFileName,
		Rotation:    Rotation{Enabled: false, MaxLines: 0},
		Timezone:    UTC,
		TimePattern: DefaultTimePattern,
		Location:    Private,
		FileMode:    FileMode,
		DirMode:     DirMode,
		Now:         time.Now,
		Sink:        stdSink(),
		Filer:       filer.Default(),
	}
}

// withDefaults returns a copy of the config with missing values set.
func (c Config) withDefaults() Config {
	def := DefaultConfig()

	if c.FileName == "" {
		c.FileName = def.FileName
	}

	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}

	if c.TimePattern == "" {
		c.TimePattern = def.TimePattern
	}

	if c.Location == "" {
		c.Location = def.Location
	}

	if c.FileMode == 0 {
		c.FileMode = def.FileMode
	}

	if c.DirMode == 0 {
		c.DirMode = def.DirMode
	}

	if c.Now == nil {
		c.Now = def.Now
	}

	if c.Sink == nil {
		c.Sink = def.Sink
	}

	if c.Filer == nil {
		c.Filer = def.Filer
	}

	return c
}

// check validates the enumerated members.
func (c *Config) check() error {
	if _, err := c.zone(); err != nil {
		return err
	}

	switch c.Location {
	case Private, Public:
		return nil
	default:
		return fmt.Errorf("%w: unknown location %q (use %s or %s)", ErrInvalidConfig, c.Location, Private, Public)
	}
}

// zone returns the location time stamps are rendered in.
func (c *Config) zone() (*time.Location, error) {
	switch c.Timezone {
	case UTC:
		return time.UTC, nil
	case Local:
		return time.Local, nil
	default:
		return nil, fmt.Errorf("%w: unknown timezone %q (use %s or %s)", ErrInvalidConfig, c.Timezone, UTC, Local)
	}
}

// layout compiles the time pattern.
func (c *Config) layout() (*timefmt.Layout, error) {
	layout, err := timefmt.Compile(c.TimePattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return layout, nil
}

// target returns the full path to the log file under root.
func (c *Config) target(root string) (string, error) {
	if err := c.check(); err != nil {
		return "", err
	}

	if c.Location == Public {
		root = c.PublicDir
	}

	if c.Location == Public && root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("%w: finding public directory: %w", ErrCreate, err)
		}

		root = filepath.Join(home, DownloadsDir)
	}

	return filepath.Join(root, c.FileName+LogExt), nil
}
