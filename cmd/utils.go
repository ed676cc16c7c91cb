package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/n0emo/cpp-project-init/internal/builder/gen"
	"github.com/spf13/cobra"
)

// backendFlag is the value of --build-system: the name of a registered
// generator backend. The zero value selects gen.DefaultBackend.
type backendFlag struct {
	name string
}

func (f *backendFlag) String() string {
	if f.name == "" {
		return gen.DefaultBackend
	}
	return f.name
}

func (f *backendFlag) Type() string { return "backend" }

func (f *backendFlag) Set(v string) error {
	if !slices.Contains(gen.Backends(), v) {
		return fmt.Errorf("must be one of: %s", strings.Join(gen.Backends(), ", "))
	}
	f.name = v
	return nil
}

func (f *backendFlag) Reset() { f.name = "" }

// Generator returns the generator of the selected backend.
func (f *backendFlag) Generator() (gen.Generator, error) {
	return gen.New(f.String())
}

func (f *backendFlag) usage() string {
	return "Build system to generate for, one of [" + strings.Join(gen.Backends(), ", ") + "]"
}

// complete lists the backends starting with toComplete, with their help text.
func (f *backendFlag) complete(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	help := gen.BackendHelp()
	var items []string
	for _, name := range gen.Backends() {
		if !strings.HasPrefix(name, toComplete) {
			continue
		}
		if h := help[name]; h != "" {
			name += "\t" + h
		}
		items = append(items, name)
	}
	return items, cobra.ShellCompDirectiveNoFileComp
}
