package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/n0emo/cpp-project-init/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalProject has no sources, packages or tests.
func minimalProject() *project.Project {
	return &project.Project{
		Name: "app",
		Src: project.SrcDir{
			Dir: "src",
			MainFile: project.MainFile{
				Name:       "main.cpp",
				SourceFile: project.Inline("int main() {}\n"),
			},
		},
	}
}

func fullProject() *project.Project {
	p := minimalProject()
	p.Src.Sources = map[string]project.SourceFile{
		"lib.cpp":  project.Inline("// lib\n"),
		"util.cpp": project.Inline("// util\n"),
	}
	p.Src.Headers = map[string]project.SourceFile{
		"lib.hpp": project.Inline("#pragma once\n"),
	}
	p.Src.Libraries = project.StringList{"m", "pthread"}
	p.Packages = map[string]project.PackageSource{
		"fmt": {Git: &project.GitSource{URL: "https://github.com/fmtlib/fmt.git", Tag: "v1"}},
	}
	p.Testing = &project.Testing{
		Dir:       "tests",
		Framework: project.GoogleTest,
		Sources: map[string]project.SourceFile{
			"test_lib.cpp": project.Inline("// test\n"),
		},
	}
	return p
}

func TestBuildMinimal(t *testing.T) {
	g, err := Build(minimalProject(), Resolver{})
	require.NoError(t, err)

	assert.Equal(t, []string{"src"}, g.Subdirectories)
	_, ok := g.Library()
	assert.False(t, ok)
	require.Len(t, g.Targets, 1)

	exe, ok := g.Executable()
	require.True(t, ok)
	assert.Equal(t, "app", exe.Name)
	assert.Equal(t, []string{"main.cpp"}, exe.Sources)
	assert.Empty(t, exe.LinkLibraries)
	assert.Empty(t, g.Packages)
	assert.Nil(t, g.Testing)
}

func TestBuildFull(t *testing.T) {
	g, err := Build(fullProject(), Resolver{})
	require.NoError(t, err)

	assert.Equal(t, []string{"src", "lib", "tests"}, g.Subdirectories)

	require.Len(t, g.Targets, 2)
	lib, ok := g.Library()
	require.True(t, ok)
	assert.Equal(t, "app_lib", lib.Name)
	assert.Equal(t, []string{"lib.cpp", "util.cpp"}, lib.Sources)
	assert.Equal(t, Library, g.Targets[0].Kind)
	assert.Equal(t, Executable, g.Targets[1].Kind)

	exe, ok := g.Executable()
	require.True(t, ok)
	assert.Equal(t, []string{"app_lib", "m", "pthread"}, exe.LinkLibraries)

	names := make([]string, 0, len(g.Src.Files))
	for _, f := range g.Src.Files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"main.cpp", "lib.cpp", "util.cpp", "lib.hpp"}, names)

	require.Len(t, g.Packages, 1)
	assert.Equal(t, FetchPackage{Name: "fmt", GitURL: "https://github.com/fmtlib/fmt.git", GitTag: "v1"}, g.Packages[0])
	assert.True(t, g.Packages[0].IsGit())

	require.NotNil(t, g.Testing)
	assert.Equal(t, "tests", g.Testing.Dir)
	assert.Equal(t, []string{"test_lib.cpp"}, g.Testing.SourceNames())
	assert.Equal(t, []byte("// test\n"), g.Testing.Sources[0].Contents)
}

func TestBuildKeepsLinkOrder(t *testing.T) {
	p := minimalProject()
	p.Src.Libraries = project.StringList{"z", "a", "m"}

	g, err := Build(p, Resolver{})
	require.NoError(t, err)
	exe, ok := g.Executable()
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "m"}, exe.LinkLibraries)
}

func TestBuildOrdersPackagesByName(t *testing.T) {
	p := minimalProject()
	p.Packages = map[string]project.PackageSource{
		"zlib": {Download: &project.DownloadSource{URL: "https://example.com/zlib.tar.gz", Checksum: "MD5=1"}},
		"fmt":  {Git: &project.GitSource{URL: "https://github.com/fmtlib/fmt.git"}},
		"json": {Download: &project.DownloadSource{URL: "https://example.com/json.tar.xz"}},
	}

	for range 5 {
		g, err := Build(p, Resolver{})
		require.NoError(t, err)

		require.Len(t, g.Packages, 3)
		assert.Equal(t, "fmt", g.Packages[0].Name)
		assert.Equal(t, "json", g.Packages[1].Name)
		assert.Equal(t, FetchPackage{Name: "zlib", URL: "https://example.com/zlib.tar.gz", Checksum: "MD5=1"}, g.Packages[2])
		assert.Equal(t, []string{"src", "lib"}, g.Subdirectories)
	}
}

func TestBuildResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.cpp"), []byte("int main() { return 1; }\n"), 0o644))

	p := minimalProject()
	p.Src.MainFile.SourceFile = project.FromPath("main.cpp")

	g, err := Build(p, Resolver{BaseDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []byte("int main() { return 1; }\n"), g.Src.Files[0].Contents)
}

func TestBuildNestedNames(t *testing.T) {
	p := minimalProject()
	p.Src.Sources = map[string]project.SourceFile{
		"net/http.cpp": project.Inline(""),
		"net/tcp.cpp":  project.Inline(""),
	}
	p.Src.Headers = map[string]project.SourceFile{
		"net/http.hpp": project.Inline(""),
	}

	g, err := Build(p, Resolver{})
	require.NoError(t, err)
	lib, ok := g.Library()
	require.True(t, ok)
	assert.Equal(t, []string{"net/http.cpp", "net/tcp.cpp"}, lib.Sources)
	assert.Len(t, g.Src.Files, 4)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *project.Project)
		wantErr error
	}{
		{
			name: "missing main file",
			mutate: func(p *project.Project) {
				p.Src.MainFile.SourceFile = project.FromPath("does-not-exist.cpp")
			},
			wantErr: ErrSourceResolve,
		},
		{
			name: "missing test file",
			mutate: func(p *project.Project) {
				p.Testing.Sources["test_missing.cpp"] = project.FromPath("does-not-exist.cpp")
			},
			wantErr: ErrSourceResolve,
		},
		{
			name: "testing without library",
			mutate: func(p *project.Project) {
				p.Src.Sources = nil
			},
			wantErr: project.ErrInvalidProject,
		},
		{
			name: "testing without sources",
			mutate: func(p *project.Project) {
				p.Testing.Sources = map[string]project.SourceFile{}
			},
			wantErr: project.ErrInvalidProject,
		},
		{
			name: "header named like main file",
			mutate: func(p *project.Project) {
				p.Src.Headers["main.cpp"] = project.Inline("")
			},
			wantErr: project.ErrInvalidProject,
		},
		{
			name: "source names equal after cleaning",
			mutate: func(p *project.Project) {
				p.Src.Sources["./lib.cpp"] = project.Inline("")
			},
			wantErr: project.ErrInvalidProject,
		},
		{
			name: "header where a source needs a directory",
			mutate: func(p *project.Project) {
				p.Src.Sources["a/b.cpp"] = project.Inline("")
				p.Src.Headers["a"] = project.Inline("")
			},
			wantErr: project.ErrInvalidProject,
		},
		{
			name: "source below the main file",
			mutate: func(p *project.Project) {
				p.Src.Sources["main.cpp/x.cpp"] = project.Inline("")
			},
			wantErr: project.ErrInvalidProject,
		},
		{
			name: "nested test sources collide",
			mutate: func(p *project.Project) {
				p.Testing.Sources["unit"] = project.Inline("")
				p.Testing.Sources["unit/a_test.cpp"] = project.Inline("")
			},
			wantErr: project.ErrInvalidProject,
		},
		{
			name: "tests dir equals src dir",
			mutate: func(p *project.Project) {
				p.Testing.Dir = "src"
			},
			wantErr: project.ErrInvalidProject,
		},
		{
			name: "src dir collides with package dir",
			mutate: func(p *project.Project) {
				p.Src.Dir = "lib"
			},
			wantErr: project.ErrInvalidProject,
		},
		{
			name: "invalid description",
			mutate: func(p *project.Project) {
				p.Name = ""
			},
			wantErr: project.ErrInvalidProject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fullProject()
			tt.mutate(p)

			g, err := Build(p, Resolver{BaseDir: t.TempDir()})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, g)
		})
	}
}

func TestResolver(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.cpp"), []byte("a"), 0o644))

	r := Resolver{BaseDir: dir}

	data, err := r.Resolve("inline.cpp", project.Inline("inline"))
	require.NoError(t, err)
	assert.Equal(t, []byte("inline"), data)

	data, err = r.Resolve("a.cpp", project.FromPath("a.cpp"))
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), data)

	data, err = r.Resolve("abs.cpp", project.FromPath(filepath.Join(dir, "a.cpp")))
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), data)

	_, err = r.Resolve("missing.cpp", project.FromPath("missing.cpp"))
	require.ErrorIs(t, err, ErrSourceResolve)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = r.Resolve("empty.cpp", project.SourceFile{})
	require.ErrorIs(t, err, ErrSourceResolve)
}
