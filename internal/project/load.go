package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatXML  Format = "xml"
)

// descriptionPattern matches description files inside a directory.
const descriptionPattern = "project.*"

// FormatFromPath detects the description format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "xml":
		return FormatXML, nil
	default:
		return "", withKind(ErrUnsupportedFormat, "file", path)
	}
}

// Find locates the single project.* description file inside dir.
func Find(dir string) (string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), descriptionPattern, doublestar.WithFilesOnly())
	if err != nil {
		return "", fmt.Errorf("search %s: %w", dir, err)
	}
	slices.Sort(matches)

	switch len(matches) {
	case 0:
		return "", withKind(ErrDescriptionNotFound, "dir", dir)
	case 1:
		return filepath.Join(dir, matches[0]), nil
	default:
		return "", zerr.With(withKind(ErrMultipleDescriptions, "dir", dir), "files", matches)
	}
}

// Load reads a project description from a file, or from the single
// project.* file inside a directory. Relative source paths in the
// description resolve against the description file's directory.
func Load(path string, env Env) (*Project, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDescriptionNotFound, err)
	}
	if info.IsDir() {
		if path, err = Find(path); err != nil {
			return nil, err
		}
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	p, err := Parse(data, format, env)
	if err != nil {
		return nil, zerr.With(err, "file", path)
	}
	p.BaseDir = filepath.Dir(path)
	return p, nil
}

// Parse decodes and validates a description in the given format.
func Parse(data []byte, format Format, env Env) (*Project, error) {
	raw, err := decodeRaw(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDescriptionParse, err)
	}

	processed, err := newExpander(env).expand(raw)
	if err != nil {
		return nil, err
	}

	normalized, err := json.Marshal(processed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDescriptionParse, err)
	}

	p := new(Project)
	if err := json.Unmarshal(normalized, p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDescriptionParse, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// decodeRaw decodes a description into generic maps, so that expressions can
// be evaluated before the typed decode.
func decodeRaw(data []byte, format Format) (map[string]any, error) {
	raw := make(map[string]any)
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				return nil, errors.New(derr.String())
			}
			return nil, err
		}
	case FormatXML:
		return decodeXML(data)
	default:
		return nil, withKind(ErrUnsupportedFormat, "format", string(format))
	}
	return raw, nil
}
