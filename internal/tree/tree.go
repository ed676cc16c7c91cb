// Package tree holds the in-memory file tree produced by a generator and
// writes it to disk.
package tree

import (
	"errors"
	"path"
	"strings"
)

// Node is a directory or a file. Directory names and file names may contain
// slashes, in which case they denote nested paths.
type Node struct {
	Name     string
	Children []Node // directories only
	Contents []byte // files only
	dir      bool
}

func Dir(name string, children ...Node) Node {
	return Node{Name: name, Children: children, dir: true}
}

func File(name string, contents []byte) Node {
	return Node{Name: name, Contents: contents}
}

func (n Node) IsDir() bool { return n.dir }

// Tree is the contents of an output root.
type Tree struct {
	Children []Node
}

func New(children ...Node) *Tree {
	return &Tree{Children: children}
}

// WalkFunc is called for every node with its slash-separated path relative to
// the tree root.
type WalkFunc func(rel string, n Node) error

// SkipDir can be returned from a WalkFunc to skip a directory's children.
// Returned for a file, it has no effect.
var SkipDir = skipDir{}

type skipDir struct{}

func (skipDir) Error() string { return "skip this directory" }

// Walk visits the tree depth-first, parents before children, in child order.
func (t *Tree) Walk(fn WalkFunc) error {
	return walk("", t.Children, fn)
}

func walk(parent string, nodes []Node, fn WalkFunc) error {
	for _, n := range nodes {
		rel := path.Join(parent, n.Name)
		if err := fn(rel, n); err != nil {
			if errors.Is(err, SkipDir) {
				continue
			}
			return err
		}
		if n.dir {
			if err := walk(rel, n.Children, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Find returns the node at the slash-separated path rel.
func (t *Tree) Find(rel string) (Node, bool) {
	rel = path.Clean(rel)
	var (
		found Node
		ok    bool
	)
	_ = t.Walk(func(p string, n Node) error {
		if ok {
			return SkipDir
		}
		if p == rel {
			found, ok = n, true
			return SkipDir
		}
		if n.dir && !strings.HasPrefix(rel, p+"/") {
			return SkipDir
		}
		return nil
	})
	return found, ok
}

// Files returns the paths of all files in walk order.
func (t *Tree) Files() []string {
	var files []string
	_ = t.Walk(func(rel string, n Node) error {
		if !n.dir {
			files = append(files, rel)
		}
		return nil
	})
	return files
}
