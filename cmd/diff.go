// cpp-project-init diff <path>
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/n0emo/cpp-project-init/internal/builder"
	"github.com/n0emo/cpp-project-init/internal/msg"
	"github.com/spf13/cobra"
)

func doDiff(out string) error {
	p, err := loadProject(projectNameFromDir(out))
	if err != nil {
		return err
	}
	b, err := newBuilder(p)
	if err != nil {
		return err
	}

	changes, err := b.Diff(out)
	if err != nil {
		return err
	}

	counts := make(map[builder.ChangeStatus]int)
	for _, c := range changes {
		counts[c.Status]++
		switch c.Status {
		case builder.Added:
			fmt.Fprintf(msg.Output, "%s %s\n", color.HiGreenString("added"), c.Path)
		case builder.Modified:
			fmt.Fprintf(msg.Output, "%s %s\n", color.YellowString("modified"), c.Path)
			fmt.Fprint(&msg.IndentWriter{Indent: "    ", W: msg.Output}, c.Diff)
		case builder.Unchanged:
			msg.Debug("unchanged %s", c.Path)
		}
	}

	msg.Info("%d added, %d modified, %d unchanged", counts[builder.Added], counts[builder.Modified], counts[builder.Unchanged])
	return nil
}

var diffCmd = &cobra.Command{
	Use:   "diff <path>",
	Short: "Show what generating into a directory would change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return doDiff(args[0])
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
