package wfc

import "errors"

var (
	ErrInvalidSize      = errors.New("wfc: invalid grid size")
	ErrOutOfBounds      = errors.New("wfc: coordinate out of bounds")
	ErrAlreadyCollapsed = errors.New("wfc: cell already collapsed")
	ErrContradiction    = errors.New("wfc: contradiction - no valid tiles for cell")
	ErrOutputShape      = errors.New("wfc: output grid shape does not match")
	ErrRetryLimit       = errors.New("wfc: exceeded consecutive reset limit")
	ErrDuplicateRule    = errors.New("wfc: duplicate adjacency rule")
	ErrAsymmetricRule   = errors.New("wfc: asymmetric adjacency rule")
	ErrUnknownTile      = errors.New("wfc: unknown tile")
)
