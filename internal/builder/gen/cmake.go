package gen

import (
	"fmt"
	"strings"

	"github.com/n0emo/cpp-project-init/internal/builder/graph"
	"github.com/n0emo/cpp-project-init/internal/project"
	"github.com/n0emo/cpp-project-init/internal/tree"
	"go.trai.ch/zerr"
)

const (
	CMakeName = "cmake"

	// CMakeManifest is the listfile name in every generated directory.
	CMakeManifest = "CMakeLists.txt"

	cmakeMinimumVersion = "3.10"
)

// CMake generates CMakeLists.txt files. External packages are declared with
// FetchContent and tests are built against GoogleTest.
type CMake struct{}

func (CMake) Name() string { return CMakeName }

// Generate assembles the output tree: the root listfile, the source directory
// with its listfile and files, the package directory, and the test directory
// with its listfile and files.
func (CMake) Generate(g *graph.Graph) (*tree.Tree, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil graph", ErrRender)
	}
	if len(g.Subdirectories) == 0 || g.Subdirectories[0] != g.Src.Name {
		return nil, zerr.With(fmt.Errorf("%w: source directory must come first", ErrRender), "subdirectories", g.Subdirectories)
	}
	if _, ok := g.Executable(); !ok {
		return nil, fmt.Errorf("%w: graph has no executable target", ErrRender)
	}

	srcFiles, err := cmakeFiles(g.Src.Name, CMakeSrc(g), g.Src.Files)
	if err != nil {
		return nil, err
	}
	children := []tree.Node{
		tree.File(CMakeManifest, []byte(CMakeRoot(g))),
		tree.Dir(g.Src.Name, srcFiles...),
	}

	if len(g.Packages) > 0 {
		children = append(children, tree.Dir(graph.LibDir,
			tree.File(CMakeManifest, []byte(CMakeLib(g.Packages))),
		))
	}

	if g.Testing != nil {
		manifest, err := CMakeTests(g)
		if err != nil {
			return nil, err
		}
		testFiles, err := cmakeFiles(g.Testing.Dir, manifest, g.Testing.Sources)
		if err != nil {
			return nil, err
		}
		children = append(children, tree.Dir(g.Testing.Dir, testFiles...))
	}

	return tree.New(children...), nil
}

// cmakeFiles returns the listfile followed by the copied files of a directory.
func cmakeFiles(dir, manifest string, files []graph.File) ([]tree.Node, error) {
	nodes := make([]tree.Node, 0, len(files)+1)
	nodes = append(nodes, tree.File(CMakeManifest, []byte(manifest)))
	for _, f := range files {
		if top, _, _ := strings.Cut(f.Name, "/"); top == CMakeManifest {
			return nil, zerr.With(
				fmt.Errorf("%w: %s/%s is reserved for the generated listfile", project.ErrInvalidProject, dir, f.Name),
				"dir", dir,
			)
		}
		nodes = append(nodes, tree.File(f.Name, f.Contents))
	}
	return nodes, nil
}

// CMakeRoot renders the top-level listfile.
func CMakeRoot(g *graph.Graph) string {
	var sb strings.Builder

	writeln(&sb, "cmake_minimum_required(VERSION ", cmakeMinimumVersion, ")")
	writeln(&sb)
	writeln(&sb, "set(CMAKE_EXPORT_COMPILE_COMMANDS ON)")
	writeln(&sb)
	writeln(&sb, "project(", g.ProjectName, ")")
	writeln(&sb)

	if g.Testing != nil {
		writeln(&sb, "enable_testing()")
		writeln(&sb)
	}

	for _, dir := range g.Subdirectories {
		writeln(&sb, "add_subdirectory(", dir, ")")
	}

	return finish(&sb)
}

// CMakeSrc renders the listfile of the source directory.
func CMakeSrc(g *graph.Graph) string {
	var sb strings.Builder

	writeln(&sb, "set(CMAKE_RUNTIME_OUTPUT_DIRECTORY ${CMAKE_BINARY_DIR})")
	writeln(&sb)

	for _, t := range g.Targets {
		switch t.Kind {
		case graph.Library:
			writeln(&sb, "add_library(", t.Name)
			writeList(&sb, t.Sources)
			writeln(&sb, ")")
			writeln(&sb)
			writeln(&sb, "target_include_directories(", t.Name, " PUBLIC .)")
			writeln(&sb)
		case graph.Executable:
			writeln(&sb, "add_executable(", t.Name)
			writeList(&sb, t.Sources)
			writeln(&sb, ")")
			writeln(&sb)
			if len(t.LinkLibraries) > 0 {
				writeln(&sb, "target_link_libraries(", t.Name)
				writeList(&sb, t.LinkLibraries)
				writeln(&sb, ")")
				writeln(&sb)
			}
		}
	}

	return finish(&sb)
}

// CMakeLib renders the listfile declaring the external packages.
func CMakeLib(packages []graph.FetchPackage) string {
	var sb strings.Builder

	writeln(&sb, "include(FetchContent)")
	writeln(&sb)

	names := make([]string, 0, len(packages))
	for _, p := range packages {
		writeln(&sb, "FetchContent_Declare(")
		writeln(&sb, "    ", p.Name)
		writeField(&sb, "URL", p.URL)
		writeField(&sb, "URL_HASH", p.Checksum)
		writeField(&sb, "GIT_REPOSITORY", p.GitURL)
		writeField(&sb, "GIT_TAG", p.GitTag)
		writeln(&sb, ")")
		writeln(&sb)
		names = append(names, p.Name)
	}

	writeln(&sb, `message(STATUS "Fetching packages")`)
	writeln(&sb, "FetchContent_MakeAvailable(", strings.Join(names, " "), ")")

	return finish(&sb)
}

func writeField(sb *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	write(sb, "    ", key, " ")
	writeln(sb, value)
}

// CMakeTests renders the listfile of the test directory. Only GoogleTest is
// supported, so the configured framework does not change the output.
func CMakeTests(g *graph.Graph) (string, error) {
	if g.Testing == nil {
		return "", fmt.Errorf("%w: graph has no testing", ErrRender)
	}
	lib, ok := g.Library()
	if !ok {
		return "", fmt.Errorf("%w: tests need a library target to link", ErrRender)
	}

	var sb strings.Builder
	name := graph.TestName(g.ProjectName)

	writeln(&sb, "add_executable(", name)
	writeList(&sb, g.Testing.SourceNames())
	writeln(&sb, ")")
	writeln(&sb)

	writeln(&sb, "target_link_libraries(", name)
	writeList(&sb, []string{lib.Name, "gtest", "gtest_main"})
	writeln(&sb, ")")
	writeln(&sb)

	writeln(&sb, "include(GoogleTest)")
	writeln(&sb, "gtest_discover_tests(", name, ")")

	return finish(&sb), nil
}
