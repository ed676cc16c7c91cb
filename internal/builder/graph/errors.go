package graph

import "go.trai.ch/zerr"

// ErrSourceResolve is returned when a source file cannot be read.
var ErrSourceResolve = zerr.New("failed to resolve source file")
