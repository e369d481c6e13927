package tempdir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNextCreatesDistinctDirectories(t *testing.T) {
	base := t.TempDir()
	gen := New()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		path, err := gen.Next(base)
		if err != nil {
			t.Fatalf("Next #%d: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("Next returned %s twice", path)
		}
		seen[path] = true

		if filepath.Dir(path) != base {
			t.Fatalf("path %s not directly under %s", path, base)
		}
		if !strings.HasPrefix(filepath.Base(path), namePrefix) {
			t.Fatalf("path %s missing %q prefix", path, namePrefix)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if !info.IsDir() {
			t.Fatalf("%s is not a directory", path)
		}
	}
}

func TestNextRegeneratesRepeatedToken(t *testing.T) {
	tokens := []string{"a", "a", "a", "b"}
	calls := 0
	gen := newWith(func() (string, error) {
		tok := tokens[calls]
		calls++
		return tok, nil
	}, os.Mkdir)

	base := t.TempDir()
	first, err := gen.Next(base)
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}
	second, err := gen.Next(base)
	if err != nil {
		t.Fatalf("second Next: %v", err)
	}
	if first == second {
		t.Fatalf("Next reused %s", first)
	}
	if want := filepath.Join(base, namePrefix+"b"); second != want {
		t.Fatalf("second = %s, want %s", second, want)
	}
	if calls != 4 {
		t.Fatalf("token calls = %d, want 4", calls)
	}
}

func TestNextToleratesExistingDirectory(t *testing.T) {
	base := t.TempDir()
	if err := os.Mkdir(filepath.Join(base, namePrefix+"fixed"), 0o755); err != nil {
		t.Fatal(err)
	}
	gen := newWith(func() (string, error) { return "fixed", nil }, os.Mkdir)

	path, err := gen.Next(base)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if filepath.Base(path) != namePrefix+"fixed" {
		t.Fatalf("unexpected path %s", path)
	}
}

func TestNextFailures(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T) (base string, gen *Generator)
	}{
		{
			name: "base missing",
			setup: func(t *testing.T) (string, *Generator) {
				return filepath.Join(t.TempDir(), "missing"), New()
			},
		},
		{
			name: "base is a file",
			setup: func(t *testing.T) (string, *Generator) {
				file := filepath.Join(t.TempDir(), "file")
				if err := os.WriteFile(file, nil, 0o644); err != nil {
					t.Fatal(err)
				}
				return file, New()
			},
		},
		{
			name: "existing entry is a file",
			setup: func(t *testing.T) (string, *Generator) {
				base := t.TempDir()
				if err := os.WriteFile(filepath.Join(base, namePrefix+"x"), nil, 0o644); err != nil {
					t.Fatal(err)
				}
				return base, newWith(func() (string, error) { return "x", nil }, os.Mkdir)
			},
		},
		{
			name: "permission denied",
			setup: func(t *testing.T) (string, *Generator) {
				return t.TempDir(), newWith(uuidToken, func(string, os.FileMode) error {
					return fs.ErrPermission
				})
			},
		},
		{
			name: "token source fails",
			setup: func(t *testing.T) (string, *Generator) {
				return t.TempDir(), newWith(func() (string, error) {
					return "", fmt.Errorf("entropy exhausted")
				}, os.Mkdir)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			base, gen := tc.setup(t)
			_, err := gen.Next(base)
			if !errors.Is(err, ErrCreateDir) {
				t.Fatalf("got %v, want ErrCreateDir", err)
			}
		})
	}
}
