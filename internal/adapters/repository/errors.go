package repository

import "errors"

// Sentinel kinds for seed loading errors.
var (
	ErrInvalidSeed = errors.New("invalid activity seed")
	ErrLoadSeed    = errors.New("load activity seed failed")
)
