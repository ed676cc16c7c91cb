// cpp-project-init init [path]
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/n0emo/cpp-project-init/internal/builder"
	"github.com/n0emo/cpp-project-init/internal/builder/gen"
	"github.com/n0emo/cpp-project-init/internal/msg"
	"github.com/spf13/cobra"
)

// doInit generates a project into an existing directory. Existing files are
// only overwritten with --force.
func doInit(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	manifest := filepath.Join(dir, gen.CMakeManifest)
	if _, err := os.Stat(manifest); err == nil && !flagForce {
		return fmt.Errorf("%s already exists, use --force to overwrite", manifest)
	}

	p, err := loadProject(projectNameFromDir(dir))
	if err != nil {
		return err
	}
	b, err := newBuilder(p, builder.WithGit(flagGit), builder.WithObserver(msg.Created))
	if err != nil {
		return err
	}
	if err := b.Generate(dir); err != nil {
		return err
	}
	printNextSteps(dir)
	return nil
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a new project in an existing directory",
	Long: `Create a new project in an existing directory. If no path is given, uses ".".
Without --from, the built-in project is named after the directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		return doInit(dir)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	addGenerateFlags(initCmd)
}
