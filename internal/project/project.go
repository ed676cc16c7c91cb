package project

import (
	"embed"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

//go:embed default/sources
var defaultSources embed.FS

func defaultSource(name string) SourceFile {
	data, err := defaultSources.ReadFile("default/sources/" + name)
	if err != nil {
		panic(fmt.Sprintf("missing bundled source %q: %v", name, err))
	}
	return Inline(string(data))
}

const (
	DefaultName     = "app"
	DefaultSrcDir   = "src"
	DefaultMainName = "main.cpp"
	DefaultTestsDir = "tests"
)

// Project is a declarative description of a native project to scaffold.
type Project struct {
	Name     string         `json:"name"`
	Testing  *Testing       `json:"testing,omitempty"`
	Src      SrcDir         `json:"src"`
	Packages PackageSources `json:"packages,omitempty"`

	// BaseDir is the directory relative source paths are resolved against.
	// Empty means the working directory.
	BaseDir string `json:"-"`
}

// Default returns the built-in project: an executable and a library with a
// greeting function, no tests and no packages.
func Default() *Project {
	return &Project{
		Name: DefaultName,
		Src:  defaultSrcDir(),
	}
}

func (p *Project) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     *string        `json:"name"`
		Testing  *Testing       `json:"testing"`
		Src      *SrcDir        `json:"src"`
		Packages PackageSources `json:"packages"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Name = DefaultName
	if raw.Name != nil {
		p.Name = *raw.Name
	}
	p.Testing = raw.Testing
	p.Src = defaultSrcDir()
	if raw.Src != nil {
		p.Src = *raw.Src
	}
	p.Packages = raw.Packages
	return nil
}

// emptyElementAsObject maps an empty XML element, decoded as "", to {}.
func emptyElementAsObject(data []byte) []byte {
	if string(data) == `""` {
		return []byte("{}")
	}
	return data
}

// SourceFiles maps file names to their sources.
type SourceFiles map[string]SourceFile

func (f *SourceFiles) UnmarshalJSON(data []byte) error {
	var m map[string]SourceFile
	if err := json.Unmarshal(emptyElementAsObject(data), &m); err != nil {
		return err
	}
	*f = m
	return nil
}

// PackageSources maps package names to where they are fetched from.
type PackageSources map[string]PackageSource

func (s *PackageSources) UnmarshalJSON(data []byte) error {
	var m map[string]PackageSource
	if err := json.Unmarshal(emptyElementAsObject(data), &m); err != nil {
		return err
	}
	*s = m
	return nil
}

// PackageNames returns the configured package names in lexicographic order.
func (p *Project) PackageNames() []string {
	return slices.Sorted(maps.Keys(p.Packages))
}

type TestingFramework string

const GoogleTest TestingFramework = "GoogleTest"

// Testing defines the optional test harness section.
type Testing struct {
	Dir       string           `json:"dir"`
	Framework TestingFramework `json:"framework"`
	Sources   SourceFiles      `json:"sources"`
}

func (t *Testing) UnmarshalJSON(data []byte) error {
	data = emptyElementAsObject(data)
	var raw struct {
		Dir       *string           `json:"dir"`
		Framework *TestingFramework `json:"framework"`
		Sources   SourceFiles       `json:"sources"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.Dir = DefaultTestsDir
	if raw.Dir != nil {
		t.Dir = *raw.Dir
	}
	t.Framework = GoogleTest
	if raw.Framework != nil {
		t.Framework = *raw.Framework
	}
	t.Sources = raw.Sources
	if t.Sources == nil {
		t.Sources = SourceFiles{
			"test_greet.cpp": defaultSource("test_greet_gtest.cpp"),
		}
	}
	return nil
}

// SrcDir defines the source directory section.
type SrcDir struct {
	Dir       string      `json:"dir"`
	MainFile  MainFile    `json:"main_file"`
	Sources   SourceFiles `json:"sources"`
	Headers   SourceFiles `json:"headers"`
	Libraries StringList  `json:"libraries"`
}

func defaultSrcDir() SrcDir {
	return SrcDir{
		Dir:      DefaultSrcDir,
		MainFile: defaultMainFile(),
		Sources: SourceFiles{
			"lib.cpp": defaultSource("lib.cpp"),
		},
		Headers: SourceFiles{
			"lib.hpp": defaultSource("lib.hpp"),
		},
	}
}

// UnmarshalJSON fills an explicitly given src section. Unlike an absent
// section, missing sources and headers default to empty.
func (s *SrcDir) UnmarshalJSON(data []byte) error {
	data = emptyElementAsObject(data)
	var raw struct {
		Dir       *string     `json:"dir"`
		MainFile  *MainFile   `json:"main_file"`
		Sources   SourceFiles `json:"sources"`
		Headers   SourceFiles `json:"headers"`
		Libraries StringList  `json:"libraries"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Dir = DefaultSrcDir
	if raw.Dir != nil {
		s.Dir = *raw.Dir
	}
	s.MainFile = defaultMainFile()
	if raw.MainFile != nil {
		s.MainFile = *raw.MainFile
	}
	s.Sources = raw.Sources
	s.Headers = raw.Headers
	s.Libraries = raw.Libraries
	return nil
}

// MainFile is the executable's entry point. The source fields are inlined:
// {"name": "main.cpp", "path": "..."} or {"contents": "..."}.
type MainFile struct {
	Name string `json:"name"`
	SourceFile
}

func defaultMainFile() MainFile {
	return MainFile{
		Name:       DefaultMainName,
		SourceFile: defaultSource("main.cpp"),
	}
}

func (m *MainFile) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name *string `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &m.SourceFile); err != nil {
		return err
	}
	m.Name = DefaultMainName
	if raw.Name != nil {
		m.Name = *raw.Name
	}
	return nil
}

// StringList is a list of strings that also accepts a single string, or a
// single-key object wrapping either, which is how repeated XML elements
// decode. An empty string is an empty list.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	list, err := toStringList(v)
	if err != nil {
		return err
	}
	*l = list
	return nil
}

func toStringList(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		if val == "" {
			return nil, nil
		}
		return []string{val}, nil
	case []any:
		list := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected a string list item, got %T", item)
			}
			list = append(list, s)
		}
		return list, nil
	case map[string]any:
		if len(val) != 1 {
			return nil, fmt.Errorf("expected a string list, got an object with %d keys", len(val))
		}
		for _, inner := range val {
			return toStringList(inner)
		}
	}
	return nil, fmt.Errorf("expected a string list, got %T", v)
}
