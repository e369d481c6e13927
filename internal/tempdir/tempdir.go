package tempdir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const namePrefix = "rt-"

// ErrCreateDir indicates a temp directory could not be created under the base.
var ErrCreateDir = errors.New("create temp directory")

// Generator hands out a fresh directory per call. A Generator is not safe for
// concurrent use; each wrapper run owns exactly one.
type Generator struct {
	newToken func() (string, error)
	mkdir    func(string, os.FileMode) error
	issued   map[string]struct{}
}

// New returns a Generator backed by time-ordered UUIDs.
func New() *Generator {
	return newWith(uuidToken, os.Mkdir)
}

func newWith(token func() (string, error), mkdir func(string, os.FileMode) error) *Generator {
	return &Generator{
		newToken: token,
		mkdir:    mkdir,
		issued:   make(map[string]struct{}),
	}
}

// uuidToken mixes a millisecond clock with 74 random bits, which keeps
// concurrent processes apart even when they start in the same tick.
func uuidToken() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Next returns a directory under base that this Generator has never returned
// before, creating it if needed.
func (g *Generator) Next(base string) (string, error) {
	var path string
	for {
		token, err := g.newToken()
		if err != nil {
			return "", fmt.Errorf("%w: generate name: %v", ErrCreateDir, err)
		}
		path = filepath.Join(base, namePrefix+token)
		if _, seen := g.issued[path]; !seen {
			break
		}
	}
	g.issued[path] = struct{}{}

	if err := g.ensureDir(path); err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrCreateDir, path, err)
	}
	return path, nil
}

func (g *Generator) ensureDir(path string) error {
	err := g.mkdir(path, 0o700)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrExist) {
		return err
	}
	// Another process won the race for the same name; that is harmless as
	// long as what exists is a directory.
	info, statErr := os.Stat(path)
	if statErr != nil {
		return statErr
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", path)
	}
	return nil
}
