//go:build unix

package tempdir

import (
	"os"
	"testing"
)

func TestNextCreatesPrivateDirectory(t *testing.T) {
	path, err := New().Next(t.TempDir())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o700 {
		t.Fatalf("mode = %o, want 700", perm)
	}
}
