package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// SourceFile is either a path read at generation time or inline contents.
// Exactly one of the fields is set.
type SourceFile struct {
	Path     *string `json:"path,omitempty"`
	Contents *string `json:"contents,omitempty"`
}

func Inline(contents string) SourceFile {
	return SourceFile{Contents: &contents}
}

func FromPath(path string) SourceFile {
	return SourceFile{Path: &path}
}

func (f *SourceFile) UnmarshalJSON(data []byte) error {
	var raw struct {
		Path     *string `json:"path"`
		Contents *string `json:"contents"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Path = raw.Path
	f.Contents = raw.Contents
	return nil
}

func (f SourceFile) validate() error {
	switch {
	case f.Path == nil && f.Contents == nil:
		return errors.New("one of path, contents is required")
	case f.Path != nil && f.Contents != nil:
		return errors.New("path and contents are mutually exclusive")
	case f.Path != nil && *f.Path == "":
		return errors.New("empty path")
	}
	return nil
}

// PackageSource is where an external package is fetched from at configure
// time: a downloadable archive or a git repository.
type PackageSource struct {
	Download *DownloadSource `json:"download,omitempty"`
	Git      *GitSource      `json:"git,omitempty"`
}

type DownloadSource struct {
	URL      string `json:"url"`
	Checksum string `json:"checksum,omitempty"`
}

type GitSource struct {
	URL string `json:"url"`
	Tag string `json:"tag,omitempty"`
}

var depShortcuts = map[string]string{
	"gh:": "https://github.com/",
	"gl:": "https://gitlab.com/",
	"bb:": "https://bitbucket.org/",
	"sr:": "https://sr.ht/",
	"cb:": "https://codeberg.org/",
}

const gitPrefix = "git:"

var errIllegalDep = errors.New("empty or illegal package string")

// ParsePackageSource parses the shorthand package notation:
//
//	gh:fmtlib/fmt#11.0.2                      git, with a shortcut host
//	git:https://example.com/repo.git#v1        git
//	https://example.com/pkg.zip#SHA256=abc...  download, with a checksum
func ParsePackageSource(dep string) (PackageSource, error) {
	if dep == "" {
		return PackageSource{}, errIllegalDep
	}

	if strings.HasPrefix(dep, gitPrefix) {
		return gitSource(dep[len(gitPrefix):]), nil
	}

	for shortcut, host := range depShortcuts {
		if strings.HasPrefix(dep, shortcut) {
			return gitSource(host + dep[len(shortcut):]), nil
		}
	}

	if isURL(dep) {
		u, checksum, _ := strings.Cut(dep, "#")
		return PackageSource{Download: &DownloadSource{URL: u, Checksum: checksum}}, nil
	}

	return PackageSource{}, fmt.Errorf("%w: %q", errIllegalDep, dep)
}

func isURL(maybeURL string) bool {
	u, err := url.Parse(maybeURL)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// someone/something#v1.2.3
func gitSource(rawURL string) PackageSource {
	cleanURL, tag, _ := strings.Cut(rawURL, "#")
	if !strings.HasSuffix(cleanURL, ".git") {
		cleanURL += ".git"
	}
	return PackageSource{Git: &GitSource{URL: cleanURL, Tag: tag}}
}

func (s *PackageSource) UnmarshalJSON(data []byte) error {
	var shorthand string
	if err := json.Unmarshal(data, &shorthand); err == nil {
		parsed, err := ParsePackageSource(shorthand)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}

	var raw struct {
		Download *DownloadSource `json:"download"`
		Git      *GitSource      `json:"git"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Download = raw.Download
	s.Git = raw.Git
	return nil
}

func (s PackageSource) validate() error {
	switch {
	case s.Download == nil && s.Git == nil:
		return errors.New("one of download, git is required")
	case s.Download != nil && s.Git != nil:
		return errors.New("download and git are mutually exclusive")
	case s.Download != nil && s.Download.URL == "":
		return errors.New("download url is required")
	case s.Git != nil && s.Git.URL == "":
		return errors.New("git url is required")
	}
	return nil
}
