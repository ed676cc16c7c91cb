// Package gen renders a target graph into the files of a build backend.
package gen

import (
	"fmt"
	"maps"
	"slices"

	"github.com/n0emo/cpp-project-init/internal/builder/graph"
	"github.com/n0emo/cpp-project-init/internal/tree"
	"go.trai.ch/zerr"
)

var (
	// ErrRender is returned when a backend cannot render a graph.
	ErrRender = zerr.New("failed to render build files")

	ErrUnknownGenerator = zerr.New("unknown generator")
)

//go:generate mockgen -source=gen.go -destination=mocks/mock_generator.go -package=mocks

// Generator renders the build files of a backend. Generate is a pure
// function of the graph: identical graphs produce identical trees.
type Generator interface {
	Name() string
	Generate(g *graph.Graph) (*tree.Tree, error)
}

type backend struct {
	help string
	new  func() Generator
}

var backends = map[string]backend{
	CMakeName: {
		help: "Generates CMakeLists.txt files using FetchContent and GoogleTest",
		new:  func() Generator { return CMake{} },
	},
}

// DefaultBackend is used when no backend is requested.
const DefaultBackend = CMakeName

// New returns the generator of the named backend.
func New(name string) (Generator, error) {
	b, ok := backends[name]
	if !ok {
		return nil, zerr.With(fmt.Errorf("%w %q", ErrUnknownGenerator, name), "known", Backends())
	}
	return b.new(), nil
}

// Backends returns the names of all backends in lexicographic order.
func Backends() []string {
	return slices.Sorted(maps.Keys(backends))
}

// BackendHelp returns a description of each backend by name.
func BackendHelp() map[string]string {
	help := make(map[string]string, len(backends))
	for name, b := range backends {
		help[name] = b.help
	}
	return help
}
