package sample

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/piano-sampler/note"
)

// DefaultPattern names sample files; {note} is the flat spelling, e.g. Db4.
const DefaultPattern = "Piano.ff.{note}.wav"

// DefaultSubdir is the directory name searched for samples.
const DefaultSubdir = "NotesFF"

// Resolver maps notes to sample files by trying directories in order.
type Resolver struct {
	Dirs    []string
	Pattern string
}

// NewResolver searches dirs first and then DefaultDirs.
func NewResolver(dirs ...string) *Resolver {
	all := make([]string, 0, len(dirs)+5)
	all = append(all, dirs...)
	all = append(all, DefaultDirs()...)
	return &Resolver{Dirs: dedupe(all), Pattern: DefaultPattern}
}

// DefaultDirs lists the standard sample locations relative to the
// executable and the working directory.
func DefaultDirs() []string {
	var dirs []string
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		dirs = append(dirs,
			filepath.Join(exeDir, "..", "src", DefaultSubdir),
			filepath.Join(exeDir, DefaultSubdir),
		)
	}
	dirs = append(dirs, filepath.Join("src", DefaultSubdir))
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs,
			filepath.Join(cwd, "src", DefaultSubdir),
			filepath.Join(cwd, "..", "src", DefaultSubdir),
		)
	}
	return dirs
}

// FileName returns the file name for n under the resolver's pattern.
func (r *Resolver) FileName(n note.Note) string {
	pattern := r.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	return strings.ReplaceAll(pattern, "{note}", n.FlatName())
}

// Resolve returns the first existing candidate path for n. The error wraps
// ErrMissingAsset when no directory holds the file.
func (r *Resolver) Resolve(n note.Note) (string, error) {
	name := r.FileName(n)
	for _, dir := range r.Dirs {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s not found in %d directories", ErrMissingAsset, name, len(r.Dirs))
}

func dedupe(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	out := dirs[:0]
	for _, d := range dirs {
		c := filepath.Clean(d)
		if d == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
