// Package errors provides sentinel errors and custom error types for the kconfgen application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrParse indicates that an input file could not be parsed
	ErrParse = errors.New("parse error")

	// ErrSourceTree indicates that the kernel source tree is missing or unusable
	ErrSourceTree = errors.New("invalid kernel source tree")

	// ErrSymbolNotFound indicates that a symbol is not declared in the Kconfig tree
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrFixIncomplete indicates that an automatic dependency fix could not fully resolve
	ErrFixIncomplete = errors.New("dependency fix incomplete")

	// ErrProfileNotFound indicates that a named profile is not present in the manifest
	ErrProfileNotFound = errors.New("profile not found")
)

// ParseError represents a malformed line in a configuration or Kconfig file
type ParseError struct {
	File   string
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason)
	if e.Text != "" {
		msg += fmt.Sprintf(": %q", e.Text)
	}
	return msg
}

// Is returns true if the target error is ErrParse
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NewParseError creates a new ParseError
func NewParseError(file string, line int, text, reason string) *ParseError {
	return &ParseError{File: file, Line: line, Text: text, Reason: reason}
}

// SourceTreeError represents a kernel source tree that cannot provide dependency metadata
type SourceTreeError struct {
	Path   string
	Reason string
	Err    error
}

func (e *SourceTreeError) Error() string {
	msg := fmt.Sprintf("kernel source tree %s: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *SourceTreeError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrSourceTree
func (e *SourceTreeError) Is(target error) bool {
	return target == ErrSourceTree
}

// NewSourceTreeError creates a new SourceTreeError
func NewSourceTreeError(path, reason string, err error) *SourceTreeError {
	return &SourceTreeError{Path: path, Reason: reason, Err: err}
}

// SymbolNotFoundError represents a lookup of a symbol the Kconfig tree does not declare
type SymbolNotFoundError struct {
	Name string
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("symbol %s is not declared in the Kconfig tree", e.Name)
}

// Is returns true if the target error is ErrSymbolNotFound
func (e *SymbolNotFoundError) Is(target error) bool {
	return target == ErrSymbolNotFound
}

// NewSymbolNotFoundError creates a new SymbolNotFoundError
func NewSymbolNotFoundError(name string) *SymbolNotFoundError {
	return &SymbolNotFoundError{Name: name}
}

// FixError represents a dependency that the automatic fix pass could not resolve
type FixError struct {
	Symbol  string
	Clause  string
	Message string
}

func (e *FixError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("cannot fix dependency for %s: %s (%s)", e.Symbol, e.Clause, e.Message)
	}
	return fmt.Sprintf("cannot fix dependency for %s: %s", e.Symbol, e.Clause)
}

// Is returns true if the target error is ErrFixIncomplete
func (e *FixError) Is(target error) bool {
	return target == ErrFixIncomplete
}

// NewFixError creates a new FixError
func NewFixError(symbol, clause, message string) *FixError {
	return &FixError{Symbol: symbol, Clause: clause, Message: message}
}
