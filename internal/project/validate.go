package project

import (
	"errors"
	"fmt"
	"maps"
	"path"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Validate checks the description for errors that do not need any I/O.
// Every problem found is reported.
func (p *Project) Validate() error {
	var errs []error
	add := func(where string, err error) {
		errs = append(errs, zerr.With(fmt.Errorf("%w: %s: %w", ErrInvalidProject, where, err), "field", where))
	}

	if p.Name == "" {
		add("name", errors.New("must not be empty"))
	}

	if err := ValidateName(p.Src.Dir); err != nil {
		add("src.dir", err)
	}
	if err := ValidateName(p.Src.MainFile.Name); err != nil {
		add("src.main_file.name", err)
	}
	if err := p.Src.MainFile.validate(); err != nil {
		add("src.main_file", err)
	}
	validateFiles("src.sources", p.Src.Sources, add)
	validateFiles("src.headers", p.Src.Headers, add)
	for i, lib := range p.Src.Libraries {
		if strings.TrimSpace(lib) == "" {
			add(fmt.Sprintf("src.libraries[%d]", i), errors.New("must not be empty"))
		}
	}

	if p.Testing != nil {
		if err := ValidateName(p.Testing.Dir); err != nil {
			add("testing.dir", err)
		}
		validateFiles("testing.sources", p.Testing.Sources, add)
	}

	for _, name := range p.PackageNames() {
		if name == "" {
			add("packages", errors.New("empty package name"))
			continue
		}
		if err := p.Packages[name].validate(); err != nil {
			add("packages."+name, err)
		}
	}

	return errors.Join(errs...)
}

func validateFiles(section string, files SourceFiles, add func(string, error)) {
	for _, name := range slices.Sorted(maps.Keys(files)) {
		file := files[name]
		where := section + "." + name
		if err := ValidateName(name); err != nil {
			add(where, err)
		}
		if err := file.validate(); err != nil {
			add(where, err)
		}
	}
}

// ValidateName checks a file or directory name used in the generated tree.
// Names may contain slashes but must stay inside their parent directory.
func ValidateName(name string) error {
	switch {
	case name == "":
		return errors.New("empty name")
	case strings.ContainsRune(name, '\\'):
		return fmt.Errorf("%q: backslashes are not allowed", name)
	case path.IsAbs(name):
		return fmt.Errorf("%q: absolute names are not allowed", name)
	}
	clean := path.Clean(name)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%q: name escapes its directory", name)
	}
	return nil
}
