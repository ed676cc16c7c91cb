// Package builder turns a project description into files on disk: it builds
// the target graph, renders it with a generator and writes the result.
package builder

import (
	"fmt"
	"slices"

	"github.com/n0emo/cpp-project-init/internal/builder/gen"
	"github.com/n0emo/cpp-project-init/internal/builder/graph"
	"github.com/n0emo/cpp-project-init/internal/msg"
	"github.com/n0emo/cpp-project-init/internal/project"
	"github.com/n0emo/cpp-project-init/internal/tree"
)

const gitignoreName = ".gitignore"

// gitignore keeps out-of-source build directories out of the repository.
const gitignore = "build/\n"

type Builder struct {
	project  *project.Project
	gen      gen.Generator
	git      bool
	observer tree.Observer
}

type Option func(*Builder)

// WithGenerator replaces the default CMake generator.
func WithGenerator(g gen.Generator) Option {
	return func(b *Builder) {
		b.gen = g
	}
}

// WithGit adds a .gitignore to the output and initializes a git repository
// in the output directory.
func WithGit(enabled bool) Option {
	return func(b *Builder) {
		b.git = enabled
	}
}

// WithObserver is notified of every directory and file written.
func WithObserver(o tree.Observer) Option {
	return func(b *Builder) {
		b.observer = o
	}
}

func New(p *project.Project, opts ...Option) (*Builder, error) {
	b := &Builder{project: p}
	for _, opt := range opts {
		opt(b)
	}
	if b.gen == nil {
		g, err := gen.New(gen.DefaultBackend)
		if err != nil {
			return nil, err
		}
		b.gen = g
	}
	return b, nil
}

// Plan reads every input file and renders the output tree without writing
// anything.
func (b *Builder) Plan() (*tree.Tree, error) {
	if t := b.project.Testing; t != nil && t.Framework != project.GoogleTest {
		msg.Warn("testing framework %q is not supported, generating %s tests", t.Framework, project.GoogleTest)
	}

	g, err := graph.Build(b.project, graph.Resolver{BaseDir: b.project.BaseDir})
	if err != nil {
		return nil, err
	}
	msg.Debug("built graph of %q: %d targets, %d packages, subdirectories %v",
		g.ProjectName, len(g.Targets), len(g.Packages), g.Subdirectories)

	t, err := b.gen.Generate(g)
	if err != nil {
		return nil, fmt.Errorf("%s generator: %w", b.gen.Name(), err)
	}

	if b.git {
		if _, exists := t.Find(gitignoreName); !exists {
			t = tree.New(append(slices.Clone(t.Children), tree.File(gitignoreName, []byte(gitignore)))...)
		}
	}
	return t, nil
}

// Generate plans the project and writes it into outDir. Input errors are
// reported before anything is written; a write error leaves what was written
// so far.
func (b *Builder) Generate(outDir string) error {
	t, err := b.Plan()
	if err != nil {
		return err
	}
	return b.Render(t, outDir)
}

// Render writes a tree returned by Plan into outDir. No input file is read,
// so the caller may change outDir between Plan and Render.
func (b *Builder) Render(t *tree.Tree, outDir string) error {
	var opts []tree.Option
	if b.observer != nil {
		opts = append(opts, tree.WithObserver(b.observer))
	}
	if err := t.Render(outDir, opts...); err != nil {
		return err
	}

	if b.git {
		return initGitRepo(outDir)
	}
	return nil
}
