package template

import "errors"

var (
	// ErrLoad indicates the template source could not be read.
	ErrLoad = errors.New("template: failed to load")

	// ErrNoSource indicates an empty template name or path.
	ErrNoSource = errors.New("template: no source provided")
)
