package streamio

import (
	"os"
	"path/filepath"
	"sort"
)

// DirWalker lists the regular files under a directory (non-recursive,
// sorted by name) for the CLI driver's "input path is a directory" mode.
// A single file path is treated as a one-element list by ListInputFiles.
type DirWalker struct{}

// ListInputFiles returns the files to scan for path: path itself if it's
// a regular file, or its immediate regular-file children (sorted, no
// recursion into subdirectories) if it's a directory.
func (DirWalker) ListInputFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
