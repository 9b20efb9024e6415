package pipeline

import "github.com/kbukum/onion/errors"

var (
	// ErrMissingInput is returned by Then and ThenReturn when nothing was sent.
	ErrMissingInput = errors.MissingInput()
	// ErrTypeMismatch matches any error raised when a carried value does not
	// satisfy the type a stage, destination or identity coercion declares.
	ErrTypeMismatch = errors.New(errors.ErrCodeTypeMismatch, "carried value does not match the declared type")
)
