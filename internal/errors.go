package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrNoIndex is returned when an output directory has no index.json yet.
	ErrNoIndex = errors.New("no index.json yet")
	// ErrDayNotFound is returned when a requested day has no artifact.
	ErrDayNotFound = errors.New("day not found")
)

// StorageError represents errors accessing files or the sqlite mirror
type StorageError struct {
	Path string
	Op   string // "open", "read", "write", "exec"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents an export that is neither a JSON document nor NDJSON
type ParseError struct {
	Source string // input file name, or "upload"
	Key    string // "document" or "line N"
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExportError represents errors writing an artifact
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
