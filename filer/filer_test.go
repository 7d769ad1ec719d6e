package filer_test

import (
	"fmt"
	"os"

	"golift.io/linelog/filer"
)

// Our interface must satify a filer.Filer.
var _ filer.Filer = (*MyFiler)(nil)

// Create a custom Filer that overrides only the MkdirAll method.
type MyFiler struct {
	filer.File
}

func (f *MyFiler) MkdirAll(path string, _ os.FileMode) error {
	fmt.Printf("Creating %s\n", path)

	return nil
}

func ExampleFile() {
	// Pass f into linelog.Config.Filer.
	f := &MyFiler{}
	_ = f.MkdirAll("/var/log/app", 0o750)
	// Output:
	// Creating /var/log/app
}
