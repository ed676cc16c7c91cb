// Package graph derives the build targets, fetched packages and test harness
// of a project. Building a graph reads every input file, so a graph that was
// built successfully can be emitted and written without further input I/O.
package graph

import (
	"fmt"
	"maps"
	"path"
	"slices"

	"github.com/n0emo/cpp-project-init/internal/project"
	"go.trai.ch/zerr"
)

// LibDir is the subdirectory holding external package declarations.
const LibDir = "lib"

type TargetKind int

const (
	Library TargetKind = iota
	Executable
)

func (k TargetKind) String() string {
	switch k {
	case Library:
		return "library"
	case Executable:
		return "executable"
	default:
		return fmt.Sprintf("TargetKind(%d)", int(k))
	}
}

type Target struct {
	Kind    TargetKind
	Name    string
	Sources []string

	// LinkLibraries is empty for libraries.
	LinkLibraries []string
}

// FetchPackage is an external package fetched at configure time. Either URL
// (and optionally Checksum) or GitURL (and optionally GitTag) is set.
type FetchPackage struct {
	Name     string
	URL      string
	Checksum string
	GitURL   string
	GitTag   string
}

func (p FetchPackage) IsGit() bool { return p.GitURL != "" }

// File is a resolved source file.
type File struct {
	Name     string
	Contents []byte
}

// SourceDir holds the resolved files of the source directory in the order
// main file, sources, headers.
type SourceDir struct {
	Name  string
	Files []File
}

type Testing struct {
	Dir       string
	Framework project.TestingFramework
	Sources   []File
}

func (t *Testing) SourceNames() []string {
	names := make([]string, 0, len(t.Sources))
	for _, f := range t.Sources {
		names = append(names, f.Name)
	}
	return names
}

// Graph is the target graph of a project. Named collections from the
// description (sources, headers, packages, test sources) are ordered by name.
type Graph struct {
	ProjectName string

	// Subdirectories is the order subdirectories are added in: the source
	// directory, then LibDir if there are packages, then the test directory.
	Subdirectories []string

	Src      SourceDir
	Targets  []Target
	Packages []FetchPackage
	Testing  *Testing
}

// Library returns the library target, if there is one.
func (g *Graph) Library() (Target, bool) {
	for _, t := range g.Targets {
		if t.Kind == Library {
			return t, true
		}
	}
	return Target{}, false
}

// Executable returns the executable target. A graph from Build always has
// one.
func (g *Graph) Executable() (Target, bool) {
	for _, t := range g.Targets {
		if t.Kind == Executable {
			return t, true
		}
	}
	return Target{}, false
}

func LibraryName(projectName string) string { return projectName + "_lib" }

func TestName(projectName string) string { return projectName + "_test" }

// Build derives the graph of p, resolving every source file through r.
func Build(p *project.Project, r Resolver) (*Graph, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g := &Graph{ProjectName: p.Name}

	if err := g.buildSrc(p, r); err != nil {
		return nil, err
	}
	g.buildPackages(p)
	if err := g.buildTesting(p, r); err != nil {
		return nil, err
	}
	if err := g.buildSubdirectories(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) buildSrc(p *project.Project, r Resolver) error {
	g.Src.Name = path.Clean(p.Src.Dir)
	files := newFileSet(g.Src.Name)

	mainName := path.Clean(p.Src.MainFile.Name)
	if err := files.add(r, mainName, p.Src.MainFile.SourceFile); err != nil {
		return err
	}

	sources := make([]string, 0, len(p.Src.Sources))
	for _, name := range slices.Sorted(maps.Keys(p.Src.Sources)) {
		clean := path.Clean(name)
		if err := files.add(r, clean, p.Src.Sources[name]); err != nil {
			return err
		}
		sources = append(sources, clean)
	}

	for _, name := range slices.Sorted(maps.Keys(p.Src.Headers)) {
		if err := files.add(r, path.Clean(name), p.Src.Headers[name]); err != nil {
			return err
		}
	}
	g.Src.Files = files.files

	var links []string
	if len(sources) > 0 {
		lib := Target{
			Kind:    Library,
			Name:    LibraryName(p.Name),
			Sources: sources,
		}
		g.Targets = append(g.Targets, lib)
		links = append(links, lib.Name)
	}
	links = append(links, p.Src.Libraries...)

	g.Targets = append(g.Targets, Target{
		Kind:          Executable,
		Name:          p.Name,
		Sources:       []string{mainName},
		LinkLibraries: links,
	})
	return nil
}

func (g *Graph) buildPackages(p *project.Project) {
	for _, name := range p.PackageNames() {
		src := p.Packages[name]
		pkg := FetchPackage{Name: name}
		switch {
		case src.Download != nil:
			pkg.URL = src.Download.URL
			pkg.Checksum = src.Download.Checksum
		case src.Git != nil:
			pkg.GitURL = src.Git.URL
			pkg.GitTag = src.Git.Tag
		}
		g.Packages = append(g.Packages, pkg)
	}
}

func (g *Graph) buildTesting(p *project.Project, r Resolver) error {
	if p.Testing == nil {
		return nil
	}

	if _, ok := g.Library(); !ok {
		return zerr.With(
			fmt.Errorf("%w: testing requires at least one source file to build the %s library", project.ErrInvalidProject, LibraryName(p.Name)),
			"testing.dir", p.Testing.Dir,
		)
	}
	if len(p.Testing.Sources) == 0 {
		return zerr.With(
			fmt.Errorf("%w: testing has no sources", project.ErrInvalidProject),
			"testing.dir", p.Testing.Dir,
		)
	}

	t := &Testing{
		Dir:       path.Clean(p.Testing.Dir),
		Framework: p.Testing.Framework,
	}
	files := newFileSet(t.Dir)
	for _, name := range slices.Sorted(maps.Keys(p.Testing.Sources)) {
		if err := files.add(r, path.Clean(name), p.Testing.Sources[name]); err != nil {
			return err
		}
	}
	t.Sources = files.files
	g.Testing = t
	return nil
}

func (g *Graph) buildSubdirectories() error {
	dirs := []string{g.Src.Name}
	if len(g.Packages) > 0 {
		dirs = append(dirs, LibDir)
	}
	if g.Testing != nil {
		dirs = append(dirs, g.Testing.Dir)
	}

	seen := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		if seen[dir] {
			return zerr.With(
				fmt.Errorf("%w: subdirectory %q is used more than once", project.ErrInvalidProject, dir),
				"dir", dir,
			)
		}
		seen[dir] = true
	}
	g.Subdirectories = dirs
	return nil
}

// fileSet collects resolved files of one directory. Names may contain
// slashes, so every name also claims its ancestor directories: a name is
// rejected if it is already a file or a directory, or if one of its
// ancestors is a file.
type fileSet struct {
	dir   string
	files []File
	kinds map[string]bool // name -> is a directory
}

func newFileSet(dir string) *fileSet {
	return &fileSet{dir: dir, kinds: make(map[string]bool)}
}

func (s *fileSet) add(r Resolver, name string, src project.SourceFile) error {
	if err := s.claim(name); err != nil {
		return err
	}
	contents, err := r.Resolve(name, src)
	if err != nil {
		return err
	}
	s.files = append(s.files, File{Name: name, Contents: contents})
	return nil
}

func (s *fileSet) claim(name string) error {
	if isDir, taken := s.kinds[name]; taken {
		if isDir {
			return s.conflict("file %q is also a directory in %s", name, s.dir)
		}
		return s.conflict("duplicate file %q in %s", name, s.dir)
	}

	var ancestors []string
	for dir := path.Dir(name); dir != "."; dir = path.Dir(dir) {
		if isDir, taken := s.kinds[dir]; taken && !isDir {
			return s.conflict("file %q needs directory %q, which is a file in %s", name, dir, s.dir)
		}
		ancestors = append(ancestors, dir)
	}

	s.kinds[name] = false
	for _, dir := range ancestors {
		s.kinds[dir] = true
	}
	return nil
}

func (s *fileSet) conflict(format string, a ...any) error {
	return zerr.With(
		fmt.Errorf("%w: %s", project.ErrInvalidProject, fmt.Sprintf(format, a...)),
		"dir", s.dir,
	)
}
