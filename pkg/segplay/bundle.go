package segplay

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
)

// Bundle resolves resource names to raw bytes inside a root directory.
// The directory tree is scanned once at open time; resolution is a lookup
// against that index.
type Bundle struct {
	root   string
	logger zerolog.Logger

	// file name (base.ext) to relative directories holding it
	index map[string][]string
}

// OpenBundle scans root and builds the resolution index
func OpenBundle(root string, logger zerolog.Logger) (*Bundle, error) {
	b := &Bundle{
		root:   root,
		logger: logger,
		index:  make(map[string][]string),
	}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		name := filepath.Base(rel)
		dir := filepath.ToSlash(filepath.Dir(rel))
		if dir == "." {
			dir = ""
		}
		b.index[name] = append(b.index[name], dir)
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("root", root).Msg("Scan bundle")
		return nil, err
	}
	for name := range b.index {
		sort.Strings(b.index[name])
	}
	logger.Debug().Int("files", len(b.index)).Str("root", root).Msg("Bundle opened")
	return b, nil
}

// Resolve returns the bytes for name.ext, searching the scope directories in
// order. The empty scope element means the bundle root. A nil scope searches
// the root only.
func (b *Bundle) Resolve(name, ext string, scope []string) ([]byte, error) {
	if len(scope) == 0 {
		scope = []string{""}
	}
	file := name + "." + ext
	dirs, ok := b.index[file]
	if !ok {
		return nil, &ResourceNotFoundError{Name: name, Ext: ext, Scope: scope}
	}
	for _, want := range scope {
		for _, dir := range dirs {
			if dir != want {
				continue
			}
			full := filepath.Join(b.root, filepath.FromSlash(path.Join(dir, file)))
			data, err := os.ReadFile(full)
			if err != nil {
				return nil, &DataLoadingError{Path: full, Cause: err}
			}
			b.logger.Trace().Str("path", full).Msg("Resolved")
			return data, nil
		}
	}
	return nil, &ResourceNotFoundError{Name: name, Ext: ext, Scope: scope}
}
