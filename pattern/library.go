package pattern

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

const (
	// DefaultPattern is seeded into every library so there is always something to select
	DefaultPattern = "singular.cells"

	defaultPatternBody = "!Name: singular\nO\n"
)

// Library is a directory of pattern files with one selected at a time
type Library struct {
	dir      string
	files    []string
	selected int
	cache    map[string]*Pattern
}

// OpenLibrary lists the .cells and .rle files in dir, creating the directory and
// the default single-cell pattern when they are missing
func OpenLibrary(dir string) (*Library, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "[OpenLibrary] failed to create directory: %+v", dir)
	}

	seed := filepath.Join(dir, DefaultPattern)
	if _, err := os.Stat(seed); errors.Is(err, os.ErrNotExist) {
		if err = os.WriteFile(seed, []byte(defaultPatternBody), 0o644); err != nil {
			return nil, errors.Wrapf(err, "[OpenLibrary] failed to seed file: %+v", seed)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "[OpenLibrary] failed to list directory: %+v", dir)
	}

	l := &Library{dir: dir, cache: make(map[string]*Pattern)}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".cells", ".rle":
			l.files = append(l.files, e.Name())
		}
	}
	slices.Sort(l.files)

	l.selected = max(slices.Index(l.files, DefaultPattern), 0)
	return l, nil
}

// Files returns the pattern file names in cycling order
func (l *Library) Files() []string {
	return slices.Clone(l.files)
}

// Selected returns the name of the selected file
func (l *Library) Selected() string {
	return l.files[l.selected]
}

// Select picks a file by name
func (l *Library) Select(name string) error {
	i := slices.Index(l.files, name)
	if i < 0 {
		return errors.Errorf("[Select] no pattern named %q in %s", name, l.dir)
	}
	l.selected = i
	return nil
}

// Rotate moves the selection by direction files, wrapping at either end
func (l *Library) Rotate(direction int) {
	n := len(l.files)
	l.selected = ((l.selected+direction)%n + n) % n
}

// Load parses the selected file, reusing an earlier parse of the same file
func (l *Library) Load() (*Pattern, error) {
	name := l.Selected()
	if p, ok := l.cache[name]; ok {
		return p, nil
	}

	f, err := os.Open(filepath.Join(l.dir, name))
	if err != nil {
		return nil, errors.Wrapf(err, "[Load] failed to open pattern: %+v", name)
	}
	defer f.Close()

	p, err := Decode(name, f)
	if err != nil {
		return nil, err
	}

	l.cache[name] = p
	return p, nil
}
