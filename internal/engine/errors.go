package engine

import "errors"

var (
	// ErrNotLoaded indicates a world was requested before the runtime finished loading.
	ErrNotLoaded = errors.New("engine: runtime not loaded")

	// ErrInvalidOptions indicates runtime options outside their valid range.
	ErrInvalidOptions = errors.New("engine: invalid runtime options")
)
