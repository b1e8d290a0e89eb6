package testflags

import (
	"os"
	"testing"
)

// FixtureDir returns the directory of .rds files written by a real R
// installation, skipping the test unless RCONV_R_FIXTURES points at one.
func FixtureDir(t *testing.T) string {
	dir, ok := os.LookupEnv("RCONV_R_FIXTURES")
	if !ok {
		t.SkipNow()
	}
	t.Parallel()
	return dir
}
