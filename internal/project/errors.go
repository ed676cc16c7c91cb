package project

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrDescriptionNotFound is returned when a directory holds no project.* file.
	ErrDescriptionNotFound = zerr.New("project description file not found")

	// ErrMultipleDescriptions is returned when a directory holds more than one project.* file.
	ErrMultipleDescriptions = zerr.New("more than one project description file found")

	ErrUnsupportedFormat = zerr.New("unsupported project description format")
	ErrDescriptionParse  = zerr.New("failed to parse project description")
	ErrExpression        = zerr.New("failed to evaluate expression")

	// ErrInvalidProject is returned for descriptions that parse but cannot be
	// scaffolded.
	ErrInvalidProject = zerr.New("invalid project description")
)

// withKind attaches metadata to kind while keeping the result matchable with
// errors.Is.
func withKind(kind error, key string, value any) error {
	return zerr.With(fmt.Errorf("%w", kind), key, value)
}
