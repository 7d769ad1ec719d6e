// Package filer is the file system interface used by linelog.
// You may override this to gain more control of file operations in your app,
// or to inject failures in tests.
package filer

//go:generate mockgen -destination=../mocks/filer.go -package=mocks golift.io/linelog/filer Filer

import (
	"os"
)

// Filer is used to override file-managing procedures.
type Filer interface {
	MkdirAll(path string, perm os.FileMode) error
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	Stat(name string) (os.FileInfo, error)
}

// Default returns a Filer interface that works, using default procedures.
func Default() Filer {
	return &File{}
}

// File can be embedded in a custom type to provide the missing methods for the Filer interface.
type File struct{}

// MkdirAll provides os.MkdirAll.
func (f *File) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// OpenFile provides os.OpenFile.
func (f *File) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// Stat provides os.Stat.
func (f *File) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}
