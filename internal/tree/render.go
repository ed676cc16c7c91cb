package tree

import (
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// ErrMaterialize is returned when a directory or file cannot be written.
var ErrMaterialize = zerr.New("failed to write output")

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Observer is notified after every directory or file the renderer creates.
type Observer func(path string, isDir bool)

type renderOptions struct {
	observer Observer
}

type Option func(*renderOptions)

func WithObserver(o Observer) Option {
	return func(opts *renderOptions) {
		opts.observer = o
	}
}

// Render writes the tree under root, depth-first. Directories are created
// with their missing ancestors before their children are written, and files
// overwrite whatever is at their path. Rendering stops at the first error
// and leaves what was written so far.
func (t *Tree) Render(root string, opts ...Option) error {
	var o renderOptions
	for _, opt := range opts {
		opt(&o)
	}

	return t.Walk(func(rel string, n Node) error {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if n.dir {
			if err := os.MkdirAll(path, dirPerm); err != nil {
				return zerr.With(fmt.Errorf("%w: %w", ErrMaterialize, err), "path", path)
			}
		} else {
			if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
				return zerr.With(fmt.Errorf("%w: %w", ErrMaterialize, err), "path", path)
			}
			if err := os.WriteFile(path, n.Contents, filePerm); err != nil {
				return zerr.With(fmt.Errorf("%w: %w", ErrMaterialize, err), "path", path)
			}
		}
		if o.observer != nil {
			o.observer(path, n.dir)
		}
		return nil
	})
}
