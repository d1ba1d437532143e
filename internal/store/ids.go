package store

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator produces message identifiers. Values must be unique for the
// lifetime of the store; no format is imposed on them.
type IDGenerator interface {
	NewID() (string, error)
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() (string, error)

func (f IDGeneratorFunc) NewID() (string, error) {
	return f()
}

// UUIDGenerator issues UUID v7 (RFC 9562) identifiers, which sort by
// creation time.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIDGeneration, err)
	}
	return id.String(), nil
}
