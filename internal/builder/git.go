package builder

import (
	"fmt"

	"github.com/go-git/go-git/v6"
	"github.com/n0emo/cpp-project-init/internal/msg"
)

// initGitRepo creates a repository in dir unless dir already is one.
func initGitRepo(dir string) error {
	if _, err := git.PlainOpen(dir); err == nil {
		msg.Debug("%s is already a git repository", dir)
		return nil
	}

	if _, err := git.PlainInit(dir, false); err != nil {
		return fmt.Errorf("git init %s: %w", dir, err)
	}
	msg.Info("initialized a git repository in %s", dir)
	return nil
}
