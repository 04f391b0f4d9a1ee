package scale

import "errors"

var (
	ErrScaleNotFound = errors.New("scale not found")
	// ErrNotOnScale blocks confirmations from users holding no position
	// on the scale.
	ErrNotOnScale = errors.New("user is not on this scale")
)
