package model

import "errors"

// ErrUnknownKind is returned when a section kind name is not recognised.
var ErrUnknownKind = errors.New("model: unknown section kind")
