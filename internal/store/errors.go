package store

import (
	"errors"
	"fmt"
)

var (
	// ErrVersionConflict occurs when optimistic locking fails
	ErrVersionConflict = errors.New("version conflict: expected version does not match stream version")

	// ErrInvalidStreamName occurs when a stream name is empty
	ErrInvalidStreamName = errors.New("invalid stream name")

	// ErrEmptyBatch occurs when a write carries no messages
	ErrEmptyBatch = errors.New("write batch contains no messages")

	// ErrIDGeneration occurs when the identifier generator fails
	ErrIDGeneration = errors.New("failed to generate message id")

	// ErrInvariantViolation marks corrupted internal state. It is only ever
	// raised as a panic value.
	ErrInvariantViolation = errors.New("store invariant violated")
)

// VersionConflictError provides detailed information about version conflicts
type VersionConflictError struct {
	StreamName      string
	ExpectedVersion StreamVersion
	ActualVersion   StreamVersion
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("version conflict on stream %s: expected %s, actual %s",
		e.StreamName, e.ExpectedVersion, e.ActualVersion)
}

func (e *VersionConflictError) Is(target error) bool {
	return target == ErrVersionConflict
}

// NewVersionConflictError creates a new VersionConflictError
func NewVersionConflictError(streamName string, expected, actual StreamVersion) error {
	return &VersionConflictError{
		StreamName:      streamName,
		ExpectedVersion: expected,
		ActualVersion:   actual,
	}
}

// IsVersionConflict checks if an error is a version conflict error
func IsVersionConflict(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrVersionConflict)
}

// InvariantViolationError describes internal state that can only result from
// a bug: an index pointing outside the log, or positions going backwards.
type InvariantViolationError struct {
	Structure string // "log", "stream index", "category index"
	Key       string
	Detail    string
}

func (e *InvariantViolationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s: %s", ErrInvariantViolation, e.Structure, e.Detail)
	}
	return fmt.Sprintf("%s: %s[%s]: %s", ErrInvariantViolation, e.Structure, e.Key, e.Detail)
}

func (e *InvariantViolationError) Unwrap() error {
	return ErrInvariantViolation
}

// NewInvariantViolation creates a new InvariantViolationError
func NewInvariantViolation(structure, key, format string, args ...interface{}) *InvariantViolationError {
	return &InvariantViolationError{
		Structure: structure,
		Key:       key,
		Detail:    fmt.Sprintf(format, args...),
	}
}
