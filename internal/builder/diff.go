package builder

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/n0emo/cpp-project-init/internal/tree"
	"github.com/sergi/go-diff/diffmatchpatch"
)

type ChangeStatus int

const (
	Unchanged ChangeStatus = iota
	Added
	Modified
)

func (s ChangeStatus) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Modified:
		return "modified"
	default:
		return fmt.Sprintf("ChangeStatus(%d)", int(s))
	}
}

// FileChange describes what generating would do to one file.
type FileChange struct {
	Path   string // slash-separated, relative to the output directory
	Status ChangeStatus
	Diff   string // line diff for Modified files
}

// Diff plans the project and compares every planned file with the file at
// the same path under outDir. Nothing is written.
func (b *Builder) Diff(outDir string) ([]FileChange, error) {
	t, err := b.Plan()
	if err != nil {
		return nil, err
	}

	var changes []FileChange
	err = t.Walk(func(rel string, n tree.Node) error {
		if n.IsDir() {
			return nil
		}

		path := filepath.Join(outDir, filepath.FromSlash(rel))
		existing, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			changes = append(changes, FileChange{Path: rel, Status: Added})
		case err != nil:
			return fmt.Errorf("read %s: %w", path, err)
		case bytes.Equal(existing, n.Contents):
			changes = append(changes, FileChange{Path: rel, Status: Unchanged})
		default:
			changes = append(changes, FileChange{
				Path:   rel,
				Status: Modified,
				Diff:   lineDiff(string(existing), string(n.Contents)),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return changes, nil
}

// lineDiff renders a line-based diff with "-", "+" and " " prefixes.
func lineDiff(from, to string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
