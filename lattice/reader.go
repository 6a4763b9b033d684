// ABOUTME: Line-driver that streams files into a LineParser with 1-based line tracking,
// ABOUTME: plus recursive directory reading keyed by canonical path.
package lattice

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LineParser consumes a file line-by-line and produces a completed result of
// type F. Implementations are not safe for concurrent use.
type LineParser[F any] interface {
	// HandleLine consumes one newline-stripped line.
	HandleLine(line string) error
	// Complete returns the result accumulated so far without resetting.
	Complete() F
	// Reset discards accumulated state for reuse on another file.
	Reset()
}

// Filter selects which regular files a directory read visits. A nil Filter
// admits every file.
type Filter func(path string) bool

// Reader drives a LineParser over files. Reading is synchronous and
// single-threaded; one file fully occupies the call before the next begins.
type Reader[F any] struct {
	parser LineParser[F]
}

// NewReader returns a Reader driving the given parser.
func NewReader[F any](parser LineParser[F]) *Reader[F] {
	return &Reader[F]{parser: parser}
}

// Parser returns the underlying parser.
func (r *Reader[F]) Parser() LineParser[F] {
	return r.parser
}

// ReadFile streams the file's lines through the parser in order and returns
// the completed result. Format errors are stamped with the 1-based line
// number at which they occurred. The parser is not reset afterwards; callers
// reusing it across files reset it themselves (the map-returning entry points
// below do so).
func (r *Reader[F]) ReadFile(path string) (F, error) {
	var zero F

	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("opening lattice file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if err := r.parser.HandleLine(scanner.Text()); err != nil {
			var pe *ParseError
			if errors.As(err, &pe) && pe.Line == UnknownLine {
				pe.Line = line
			}
			return zero, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return zero, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return zero, fmt.Errorf("closing %s: %w", path, err)
	}

	return r.parser.Complete(), nil
}

// ReadDir recursively reads every regular file under dir that passes the
// filter, returning results keyed by canonical absolute path. Files are
// visited in lexicographic path order so a fixed filesystem snapshot always
// yields the same traversal. The parser is reset between files, so each entry
// is parsed in isolation; the first error aborts the whole read.
func (r *Reader[F]) ReadDir(dir string, filter Filter) (map[string]F, error) {
	files, err := collectFiles(dir, filter)
	if err != nil {
		return nil, err
	}

	results := make(map[string]F, len(files))
	for _, path := range files {
		contents, err := r.ReadFile(path)
		if err != nil {
			return nil, err
		}
		r.parser.Reset()

		canonical, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", path, err)
		}
		results[canonical] = contents
	}
	return results, nil
}

// ReadPath reads a single file or a whole directory depending on what path
// names, returning results keyed by canonical absolute path either way. Paths
// that are neither directories nor regular files are I/O errors.
func (r *Reader[F]) ReadPath(path string, filter Filter) (map[string]F, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if info.IsDir() {
		return r.ReadDir(path, filter)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", path)
	}

	contents, err := r.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r.parser.Reset()

	canonical, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	return map[string]F{canonical: contents}, nil
}

// collectFiles expands dir through an explicit worklist, gathering every
// regular file that passes the filter. os.ReadDir returns entries sorted by
// name; the final list is sorted again so files from different subdirectories
// interleave deterministically.
func collectFiles(dir string, filter Filter) ([]string, error) {
	var files []string
	worklist := []string{dir}

	for len(worklist) > 0 {
		current := worklist[0]
		worklist = worklist[1:]

		entries, err := os.ReadDir(current)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", current, err)
		}
		for _, entry := range entries {
			path := filepath.Join(current, entry.Name())
			switch {
			case entry.IsDir():
				worklist = append(worklist, path)
			case entry.Type().IsRegular():
				if filter == nil || filter(path) {
					files = append(files, path)
				}
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// ParseLatticeFile is a one-shot convenience: parse a single lattice file
// into a graph with a fresh parser.
func ParseLatticeFile(path string, transform LabelTransform) (*Graph, error) {
	return NewReader[*Graph](NewParser(transform)).ReadFile(path)
}

// ParseLatticePath parses a lattice file or a directory of lattice files,
// keyed by canonical path.
func ParseLatticePath(path string, transform LabelTransform, filter Filter) (map[string]*Graph, error) {
	return NewReader[*Graph](NewParser(transform)).ReadPath(path, filter)
}

// ReadNonwordFile loads a non-word label list with a fresh set parser.
func ReadNonwordFile(path string, transform LabelTransform) (*NonwordSet, error) {
	return NewReader[*NonwordSet](NewSetParser(transform)).ReadFile(path)
}
