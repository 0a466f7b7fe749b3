// Package errors provides sentinel errors and custom error types for the treemerge application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNotFound indicates that a tree root does not exist or is not a directory
	ErrNotFound = errors.New("not found")

	// ErrReadFailed indicates that a file could not be read during detection
	ErrReadFailed = errors.New("read failed")

	// ErrApplyFailed indicates that a copy or write into the ancestor tree failed
	ErrApplyFailed = errors.New("apply failed")
)

// RootNotFoundError represents an error when one of the three tree roots is missing
type RootNotFoundError struct {
	Role string
	Path string
}

func (e *RootNotFoundError) Error() string {
	return fmt.Sprintf("%s directory does not exist: %s", e.Role, e.Path)
}

// Is returns true if the target error is ErrNotFound
func (e *RootNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewRootNotFoundError creates a new RootNotFoundError
func NewRootNotFoundError(role, path string) *RootNotFoundError {
	return &RootNotFoundError{Role: role, Path: path}
}

// Op names a file operation
type Op string

const (
	OpRead  Op = "read"
	OpCopy  Op = "copy"
	OpWrite Op = "write"
)

// FileOpError represents a failed operation on a single file
type FileOpError struct {
	Op   Op
	Path string
	Err  error
}

func (e *FileOpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileOpError) Unwrap() error {
	return e.Err
}

// Is returns true for ErrReadFailed on reads and ErrApplyFailed on copies and writes
func (e *FileOpError) Is(target error) bool {
	switch target {
	case ErrReadFailed:
		return e.Op == OpRead
	case ErrApplyFailed:
		return e.Op == OpCopy || e.Op == OpWrite
	}
	return false
}

// NewFileOpError creates a new FileOpError
func NewFileOpError(op Op, path string, err error) *FileOpError {
	return &FileOpError{Op: op, Path: path, Err: err}
}
