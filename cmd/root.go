package cmd

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/n0emo/cpp-project-init/internal/builder"
	"github.com/n0emo/cpp-project-init/internal/msg"
	"github.com/n0emo/cpp-project-init/internal/project"
	"github.com/spf13/cobra"
)

var (
	flagFrom        string
	flagForce       bool
	flagGit         bool
	flagVerbose     bool
	flagBuildSystem backendFlag
)

var rootCmd = &cobra.Command{
	Use:           "cpp-project-init",
	Short:         "Scaffold C++ projects",
	Long:          `Scaffold a buildable C++ project from a project description, or from the built-in template.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		msg.Verbose = flagVerbose
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&flagFrom, "from", "f", "", "Project description file, or a directory containing project.{yaml,yml,json,toml,xml}")
	flags.VarP(&flagBuildSystem, "build-system", "b", flagBuildSystem.usage())
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "Print debug messages")
	rootCmd.RegisterFlagCompletionFunc("build-system", flagBuildSystem.complete)
}

// addGenerateFlags adds the flags of commands that write a project.
func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing project")
	cmd.Flags().BoolVar(&flagGit, "git", false, "Add a .gitignore and initialize a git repository")
}

var invalidNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// projectNameFromDir derives a CMake project name from a directory.
func projectNameFromDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return project.DefaultName
	}
	name := invalidNameChars.ReplaceAllString(filepath.Base(abs), "_")
	if name == "" || name == "_" {
		return project.DefaultName
	}
	return name
}

// loadProject reads the description given with --from, or returns the
// built-in project. defaultName renames the built-in project if non-empty.
func loadProject(defaultName string) (*project.Project, error) {
	if flagFrom == "" {
		p := project.Default()
		if defaultName != "" {
			p.Name = defaultName
		}
		msg.Debug("using the built-in project %q", p.Name)
		return p, nil
	}

	p, err := project.Load(flagFrom, project.NewEnv())
	if err != nil {
		return nil, err
	}
	msg.Debug("loaded project %q from %s", p.Name, flagFrom)
	return p, nil
}

func newBuilder(p *project.Project, opts ...builder.Option) (*builder.Builder, error) {
	g, err := flagBuildSystem.Generator()
	if err != nil {
		return nil, err
	}
	return builder.New(p, append([]builder.Option{builder.WithGenerator(g)}, opts...)...)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		msg.Error("%v", err)
		os.Exit(1)
	}
}
