package linelog_test

import (
	"testing"

	"go.uber.org/goleak"
)

// Appends run on the caller's go routine; nothing may be left running.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
