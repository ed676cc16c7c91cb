package graph

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/n0emo/cpp-project-init/internal/project"
	"go.trai.ch/zerr"
)

// Resolver turns a SourceFile into its contents. It is the only place that
// reads input files.
type Resolver struct {
	// BaseDir is prepended to relative paths.
	BaseDir string
}

// Resolve returns the contents of the source file called name.
func (r Resolver) Resolve(name string, src project.SourceFile) ([]byte, error) {
	if src.Contents != nil {
		return []byte(*src.Contents), nil
	}
	if src.Path == nil {
		return nil, zerr.With(fmt.Errorf("%w: no path or contents", ErrSourceResolve), "file", name)
	}

	path := *src.Path
	if !filepath.IsAbs(path) && r.BaseDir != "" {
		path = filepath.Join(r.BaseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.With(fmt.Errorf("%w: %w", ErrSourceResolve, err), "file", name), "path", path)
	}
	return data, nil
}
