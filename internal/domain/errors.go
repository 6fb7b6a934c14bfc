package domain

import "errors"

var (
	// ErrPremintExists is returned when inserting a premint whose (kind, id) is already stored
	ErrPremintExists = errors.New("premint already exists")

	// ErrPremintNotFound is returned when no premint matches the given (kind, id)
	ErrPremintNotFound = errors.New("premint not found")

	// ErrInvalidPremint is returned when a premint payload fails validation
	ErrInvalidPremint = errors.New("invalid premint")

	// ErrUnknownKind is returned when a payload names a kind this node does not understand
	ErrUnknownKind = errors.New("unknown premint kind")
)
