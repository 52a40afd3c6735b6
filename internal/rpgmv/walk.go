package rpgmv

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// fileVisitor is called for each regular file found by walkFiles, and for each symlink
// whose target cannot be resolved, in which case statErr is set.
// Returning stop ends the walk early.
type fileVisitor func(path string, statErr error) (stop bool, err error)

// walker walks a tree depth first in name order.
// Directory symlinks are followed, each resolved directory at most once.
type walker struct {
	visit fileVisitor
	seen  map[string]struct{}
}

// walkFiles walks root, calling visit for every file. Unreadable directories abort the walk.
func walkFiles(root string, visit fileVisitor) error {
	w := &walker{visit: visit, seen: make(map[string]struct{})}

	_, err := w.dir(root)

	return err
}

func (w *walker) dir(dir string) (bool, error) {
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		if _, ok := w.seen[resolved]; ok {
			return false, nil
		}

		w.seen[resolved] = struct{}{}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("reading directory %q: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		mode := entry.Type()

		var statErr error

		if mode&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				statErr = err
			} else {
				mode = info.Mode().Type()
			}
		}

		if statErr == nil {
			if mode.IsDir() {
				stop, err := w.dir(path)
				if err != nil || stop {
					return stop, err
				}

				continue
			}

			// Sockets, devices, pipes.
			if !mode.IsRegular() {
				continue
			}
		}

		stop, err := w.visit(path, statErr)
		if err != nil || stop {
			return stop, err
		}
	}

	return false, nil
}
