// Package scan builds the flat file list the viewer walks through.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"

	"imgbrowse/internal/errors"

	"github.com/gobwas/glob"
)

// List returns every regular file reachable from dir by depth-first recursive
// descent. Subdirectories are traversed but never themselves appended, and
// the special self/parent entries never appear. Sibling order is whatever
// the filesystem enumeration yields; no sorting is applied. A directory that
// cannot be opened, at any depth, aborts the whole traversal.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewFileError("unknown directory", dir, errors.DirectoryNotFound, err)
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if isDir(path, entry) {
			sub, err := List(path)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
		} else {
			files = append(files, path)
		}
	}
	return files, nil
}

// ListMatching lists like List, then keeps only leaf files whose base name
// matches the glob pattern. An empty pattern keeps everything.
func ListMatching(dir, pattern string) ([]string, error) {
	files, err := List(dir)
	if err != nil {
		return nil, err
	}
	if pattern == "" {
		return files, nil
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid match pattern %q", pattern)
	}

	matched := make([]string, 0, len(files))
	for _, f := range files {
		if g.Match(filepath.Base(f)) {
			matched = append(matched, f)
		}
	}
	return matched, nil
}

// isDir decides whether a directory entry should be descended into. Symlinks
// are treated as leaf files, matching lstat semantics. Filesystems that
// report no entry type get an explicit lstat fallback.
func isDir(path string, entry os.DirEntry) bool {
	switch typ := entry.Type(); {
	case typ.IsDir():
		return true
	case typ.IsRegular(), typ&fs.ModeSymlink != 0:
		return false
	default:
		info, err := os.Lstat(path)
		return err == nil && info.IsDir()
	}
}
