package linelog

import (
	"time"

	"golift.io/linelog/filer"
)

// Builder provides a fluent API for building a Config.
// Every setter is optional; anything not set keeps its default.
type Builder struct {
	cfg Config
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultConfig()}
}

// Build returns the accumulated Config. The Builder may be reused; later
// changes do not affect Configs already built. No validation happens here,
// New reports invalid values.
func (b *Builder) Build() Config {
	return b.cfg
}

// FileName sets the base name of the log file. ".log" is appended.
func (b *Builder) FileName(name string) *Builder {
	b.cfg.FileName = name
	return b
}

// Limit turns line-count rotation on or off and sets the maximum line count.
func (b *Builder) Limit(enabled bool, maxLines uint) *Builder {
	b.cfg.Rotation = Rotation{Enabled: enabled, MaxLines: maxLines}
	return b
}

// TimeFormat picks UTC or local time stamps and the pattern they are rendered with.
func (b *Builder) TimeFormat(utc bool, pattern string) *Builder {
	b.cfg.Timezone = Local
	if utc {
		b.cfg.Timezone = UTC
	}

	b.cfg.TimePattern = pattern

	return b
}

// ExternalStorage stores the log in the public directory instead of the private root.
func (b *Builder) ExternalStorage(public bool) *Builder {
	b.cfg.Location = Private
	if public {
		b.cfg.Location = Public
	}

	return b
}

// PublicDir overrides the directory used for external storage.
func (b *Builder) PublicDir(dir string) *Builder {
	b.cfg.PublicDir = dir
	return b
}

// Clock sets the time source for time stamps. Useful in tests.
func (b *Builder) Clock(now func() time.Time) *Builder {
	b.cfg.Now = now
	return b
}

// Sink sets where swallowed errors are reported.
func (b *Builder) Sink(sink Sink) *Builder {
	b.cfg.Sink = sink
	return b
}

// Filer overrides the file system procedures.
func (b *Builder) Filer(f filer.Filer) *Builder {
	b.cfg.Filer = f
	return b
}
