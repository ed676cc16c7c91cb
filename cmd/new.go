// cpp-project-init new <path>
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/n0emo/cpp-project-init/internal/builder"
	"github.com/n0emo/cpp-project-init/internal/msg"
	"github.com/spf13/cobra"
)

func doNew(out string) error {
	p, err := loadProject(projectNameFromDir(out))
	if err != nil {
		return err
	}
	b, err := newBuilder(p, builder.WithGit(flagGit), builder.WithObserver(msg.Created))
	if err != nil {
		return err
	}

	// every input is read here, before anything under out is removed
	t, err := b.Plan()
	if err != nil {
		return err
	}

	if flagForce {
		if _, err := os.Stat(out); err == nil {
			msg.Warn("removing existing %s", out)
			if err := os.RemoveAll(out); err != nil {
				return fmt.Errorf("remove %s: %w", out, err)
			}
		}
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", out, err)
	}

	if err := b.Render(t, out); err != nil {
		return err
	}
	printNextSteps(out)
	return nil
}

func printNextSteps(dir string) {
	tc := builder.FindToolchain()
	if tc.CMake == "" {
		msg.Warn("cmake was not found, install it to build the project")
	}
	if tc.CXX == "" {
		msg.Warn("no C++ compiler was found, set $CXX or install one")
	}

	buildDir := filepath.ToSlash(filepath.Join(dir, "build"))
	fmt.Fprintf(msg.Output, "You can now do %s to configure, and %s to build.\n",
		color.HiCyanString("cmake -S "+filepath.ToSlash(dir)+" -B "+buildDir),
		color.HiCyanString("cmake --build "+buildDir))
}

var newCmd = &cobra.Command{
	Use:   "new <path>",
	Short: "Create a new project in a new directory",
	Long: `Create a new project in a new directory. Without --from, the built-in
project is generated, named after the directory: an executable and a library
with a greeting function.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return doNew(args[0])
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	addGenerateFlags(newCmd)
}
